// Package geo provides a small gazetteer with location specificity levels and weights.
// It is shared by the proximity scoring factor and the front page geography buckets.
package geo

import (
	"regexp"
	"strings"
)

// Level is a location specificity, higher is more specific
type Level int

// specificity levels
const (
	LevelGlobal Level = iota
	LevelCountry
	LevelRegion
	LevelCity
)

// String returns level name
func (l Level) String() string {
	switch l {
	case LevelCity:
		return "city"
	case LevelRegion:
		return "region"
	case LevelCountry:
		return "country"
	default:
		return "global"
	}
}

// Location is a gazetteer entry
type Location struct {
	Name   string
	Level  Level
	Weight float64 // contribution to the proximity multiplier
}

// Bucket returns the diversity bucket key, e.g. "city:chennai"
func (l Location) Bucket() string {
	if l.Level == LevelGlobal {
		return "global"
	}
	return l.Level.String() + ":" + l.Name
}

// Global is the bucket used when no gazetteer entry matches
var Global = Location{Name: "global", Level: LevelGlobal}

// Gazetteer matches locations in free text
type Gazetteer struct {
	entries []entry
}

type entry struct {
	Location
	re *regexp.Regexp
}

// default gazetteer, weights reflect how strongly a mention pulls a story toward the reader
var defaultLocations = []Location{
	// cities
	{Name: "chennai", Level: LevelCity, Weight: 0.8},
	{Name: "mumbai", Level: LevelCity, Weight: 0.8},
	{Name: "delhi", Level: LevelCity, Weight: 0.8},
	{Name: "new delhi", Level: LevelCity, Weight: 0.8},
	{Name: "bengaluru", Level: LevelCity, Weight: 0.8},
	{Name: "bangalore", Level: LevelCity, Weight: 0.8},
	{Name: "hyderabad", Level: LevelCity, Weight: 0.7},
	{Name: "kolkata", Level: LevelCity, Weight: 0.7},
	{Name: "pune", Level: LevelCity, Weight: 0.6},
	{Name: "coimbatore", Level: LevelCity, Weight: 0.6},
	{Name: "madurai", Level: LevelCity, Weight: 0.6},
	{Name: "new york", Level: LevelCity, Weight: 0.5},
	{Name: "london", Level: LevelCity, Weight: 0.5},
	{Name: "washington", Level: LevelCity, Weight: 0.5},
	{Name: "tokyo", Level: LevelCity, Weight: 0.4},
	{Name: "paris", Level: LevelCity, Weight: 0.4},
	{Name: "beijing", Level: LevelCity, Weight: 0.4},
	{Name: "moscow", Level: LevelCity, Weight: 0.4},
	{Name: "dubai", Level: LevelCity, Weight: 0.4},
	{Name: "singapore", Level: LevelCity, Weight: 0.4},
	{Name: "san francisco", Level: LevelCity, Weight: 0.4},

	// states and regions
	{Name: "tamil nadu", Level: LevelRegion, Weight: 0.6},
	{Name: "kerala", Level: LevelRegion, Weight: 0.5},
	{Name: "karnataka", Level: LevelRegion, Weight: 0.5},
	{Name: "maharashtra", Level: LevelRegion, Weight: 0.5},
	{Name: "andhra pradesh", Level: LevelRegion, Weight: 0.5},
	{Name: "telangana", Level: LevelRegion, Weight: 0.5},
	{Name: "uttar pradesh", Level: LevelRegion, Weight: 0.5},
	{Name: "west bengal", Level: LevelRegion, Weight: 0.5},
	{Name: "gujarat", Level: LevelRegion, Weight: 0.5},
	{Name: "punjab", Level: LevelRegion, Weight: 0.4},
	{Name: "kashmir", Level: LevelRegion, Weight: 0.5},
	{Name: "california", Level: LevelRegion, Weight: 0.3},
	{Name: "texas", Level: LevelRegion, Weight: 0.3},
	{Name: "europe", Level: LevelRegion, Weight: 0.3},
	{Name: "middle east", Level: LevelRegion, Weight: 0.3},
	{Name: "gaza", Level: LevelRegion, Weight: 0.3},

	// countries
	{Name: "india", Level: LevelCountry, Weight: 0.5},
	{Name: "pakistan", Level: LevelCountry, Weight: 0.3},
	{Name: "sri lanka", Level: LevelCountry, Weight: 0.3},
	{Name: "bangladesh", Level: LevelCountry, Weight: 0.3},
	{Name: "china", Level: LevelCountry, Weight: 0.3},
	{Name: "united states", Level: LevelCountry, Weight: 0.3},
	{Name: "usa", Level: LevelCountry, Weight: 0.3},
	{Name: "uk", Level: LevelCountry, Weight: 0.2},
	{Name: "britain", Level: LevelCountry, Weight: 0.2},
	{Name: "russia", Level: LevelCountry, Weight: 0.2},
	{Name: "ukraine", Level: LevelCountry, Weight: 0.2},
	{Name: "israel", Level: LevelCountry, Weight: 0.2},
	{Name: "iran", Level: LevelCountry, Weight: 0.2},
	{Name: "japan", Level: LevelCountry, Weight: 0.2},
	{Name: "germany", Level: LevelCountry, Weight: 0.2},
	{Name: "france", Level: LevelCountry, Weight: 0.2},
	{Name: "australia", Level: LevelCountry, Weight: 0.2},
	{Name: "canada", Level: LevelCountry, Weight: 0.2},
}

// New makes a gazetteer from the default locations plus extra ones
func New(extra ...Location) *Gazetteer {
	g := &Gazetteer{}
	for _, loc := range append(append([]Location{}, defaultLocations...), extra...) {
		g.add(loc)
	}
	return g
}

func (g *Gazetteer) add(loc Location) {
	loc.Name = strings.ToLower(strings.TrimSpace(loc.Name))
	if loc.Name == "" {
		return
	}
	g.entries = append(g.entries, entry{
		Location: loc,
		re:       regexp.MustCompile(`\b` + regexp.QuoteMeta(loc.Name) + `\b`),
	})
}

// Matches returns all locations mentioned in text, in gazetteer order
func (g *Gazetteer) Matches(text string) []Location {
	lower := strings.ToLower(text)
	var res []Location
	for _, e := range g.entries {
		if e.re.MatchString(lower) {
			res = append(res, e.Location)
		}
	}
	return res
}

// Locate returns the most specific location mentioned in text,
// ties resolved by gazetteer order. Returns Global if nothing matches.
func (g *Gazetteer) Locate(text string) Location {
	best := Global
	for _, loc := range g.Matches(text) {
		if loc.Level > best.Level {
			best = loc
		}
	}
	return best
}
