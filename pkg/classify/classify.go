// Package classify re-derives the topical section of an article from its text.
// Classification runs in two stages: a named entity mapped to a section wins immediately,
// otherwise every section is scored by keyword hits and the best one wins with at least MinKeywordScore hits.
package classify

import (
	"regexp"
	"strings"

	"github.com/umputun/newsdesk/pkg/domain"
)

// MinKeywordScore is the minimal number of keyword hits for a conclusive keyword classification
const MinKeywordScore = 2

// Entity is a named entity pinned to a section
type Entity struct {
	Name    string
	Section string
}

// Classifier maps article text to a section
type Classifier struct {
	entities []compiledEntity
	sections []sectionKeywords // order is the tie-break order
}

type compiledEntity struct {
	Entity
	re *regexp.Regexp
}

type sectionKeywords struct {
	section  string
	keywords []matcher
}

// matcher checks a single keyword, short keywords use word boundaries to avoid substring hits ("ai" in "said")
type matcher struct {
	keyword string
	re      *regexp.Regexp // nil for plain substring containment
}

func (m matcher) match(lower string) bool {
	if m.re != nil {
		return m.re.MatchString(lower)
	}
	return strings.Contains(lower, m.keyword)
}

func newMatcher(keyword string) matcher {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if len(k) <= 3 {
		return matcher{keyword: k, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)}
	}
	return matcher{keyword: k}
}

// New makes a classifier with the built-in entity table and keyword lists
func New() *Classifier {
	return NewWith(defaultEntities, defaultKeywords)
}

// NewWith makes a classifier with custom tables. Keyword sections are evaluated in the given order,
// which also decides ties.
func NewWith(entities []Entity, keywords []SectionKeywords) *Classifier {
	c := &Classifier{}
	for _, e := range entities {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" || e.Section == "" {
			continue
		}
		c.entities = append(c.entities, compiledEntity{
			Entity: Entity{Name: name, Section: e.Section},
			re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	for _, sk := range keywords {
		s := sectionKeywords{section: sk.Section}
		for _, k := range sk.Keywords {
			if strings.TrimSpace(k) == "" {
				continue
			}
			s.keywords = append(s.keywords, newMatcher(k))
		}
		c.sections = append(c.sections, s)
	}
	return c
}

// SectionKeywords is a keyword list of a candidate section
type SectionKeywords struct {
	Section  string
	Keywords []string
}

// Classify returns the section derived from text. The second value is false when the text has
// no entity match and no section reached MinKeywordScore, the caller keeps its own section then.
func (c *Classifier) Classify(text string) (string, bool) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return "", false
	}

	for _, e := range c.entities {
		if e.re.MatchString(lower) {
			return e.Section, true
		}
	}

	bestSection, bestScore := "", 0
	for _, s := range c.sections {
		score := 0
		for _, m := range s.keywords {
			if m.match(lower) {
				score++
			}
		}
		if score > bestScore {
			bestSection, bestScore = s.section, score
		}
	}
	if bestScore < MinKeywordScore {
		return "", false
	}
	return bestSection, true
}

// Scores returns keyword hit counts per section, used for diagnostics and tests
func (c *Classifier) Scores(text string) map[string]int {
	lower := strings.ToLower(text)
	res := make(map[string]int, len(c.sections))
	for _, s := range c.sections {
		for _, m := range s.keywords {
			if m.match(lower) {
				res[s.section]++
			}
		}
	}
	return res
}

var defaultEntities = []Entity{
	// politicians
	{Name: "narendra modi", Section: domain.SectionIndia},
	{Name: "modi", Section: domain.SectionIndia},
	{Name: "rahul gandhi", Section: domain.SectionIndia},
	{Name: "amit shah", Section: domain.SectionIndia},
	{Name: "mamata banerjee", Section: domain.SectionIndia},
	{Name: "arvind kejriwal", Section: domain.SectionIndia},
	{Name: "yogi adityanath", Section: domain.SectionIndia},
	{Name: "nirmala sitharaman", Section: domain.SectionIndia},
	{Name: "joe biden", Section: domain.SectionWorld},
	{Name: "donald trump", Section: domain.SectionWorld},
	{Name: "vladimir putin", Section: domain.SectionWorld},
	{Name: "putin", Section: domain.SectionWorld},
	{Name: "zelensky", Section: domain.SectionWorld},
	{Name: "xi jinping", Section: domain.SectionWorld},
	{Name: "netanyahu", Section: domain.SectionWorld},
	{Name: "emmanuel macron", Section: domain.SectionWorld},
	{Name: "keir starmer", Section: domain.SectionWorld},

	// celebrities
	{Name: "shah rukh khan", Section: domain.SectionEntertainment},
	{Name: "salman khan", Section: domain.SectionEntertainment},
	{Name: "rajinikanth", Section: domain.SectionEntertainment},
	{Name: "deepika padukone", Section: domain.SectionEntertainment},
	{Name: "priyanka chopra", Section: domain.SectionEntertainment},
	{Name: "a r rahman", Section: domain.SectionEntertainment},
	{Name: "taylor swift", Section: domain.SectionEntertainment},

	// companies
	{Name: "reliance industries", Section: domain.SectionBusiness},
	{Name: "mukesh ambani", Section: domain.SectionBusiness},
	{Name: "gautam adani", Section: domain.SectionBusiness},
	{Name: "tata motors", Section: domain.SectionBusiness},
	{Name: "infosys", Section: domain.SectionBusiness},
	{Name: "warren buffett", Section: domain.SectionBusiness},
	{Name: "openai", Section: domain.SectionTechnology},
	{Name: "nvidia", Section: domain.SectionTechnology},
	{Name: "microsoft", Section: domain.SectionTechnology},
	{Name: "sundar pichai", Section: domain.SectionTechnology},
	{Name: "isro", Section: domain.SectionScience},
	{Name: "nasa", Section: domain.SectionScience},

	// teams and athletes
	{Name: "virat kohli", Section: domain.SectionSports},
	{Name: "rohit sharma", Section: domain.SectionSports},
	{Name: "ms dhoni", Section: domain.SectionSports},
	{Name: "neeraj chopra", Section: domain.SectionSports},
	{Name: "lionel messi", Section: domain.SectionSports},
	{Name: "cristiano ronaldo", Section: domain.SectionSports},
	{Name: "chennai super kings", Section: domain.SectionSports},
	{Name: "mumbai indians", Section: domain.SectionSports},
	{Name: "manchester united", Section: domain.SectionSports},
	{Name: "real madrid", Section: domain.SectionSports},
}

var defaultKeywords = []SectionKeywords{
	{Section: domain.SectionWorld, Keywords: []string{
		"united nations", "un", "summit", "sanctions", "war", "nato", "foreign minister", "embassy",
		"refugee", "ceasefire", "diplomat", "international", "treaty", "eu", "border",
	}},
	{Section: domain.SectionIndia, Keywords: []string{
		"lok sabha", "rajya sabha", "bjp", "congress party", "parliament", "supreme court", "rbi",
		"rupee", "chief minister", "aadhaar", "union minister", "state government",
	}},
	{Section: domain.SectionBusiness, Keywords: []string{
		"market", "stock", "shares", "sensex", "nifty", "ipo", "earnings", "profit", "revenue", "gdp",
		"inflation", "economy", "investors", "merger", "acquisition", "startup", "funding", "quarter",
	}},
	{Section: domain.SectionTechnology, Keywords: []string{
		"ai", "artificial intelligence", "software", "smartphone", "app", "chip", "semiconductor",
		"cyber", "internet", "gadget", "robot", "5g", "cloud", "tech",
	}},
	{Section: domain.SectionSports, Keywords: []string{
		"cricket", "football", "match", "tournament", "ipl", "fifa", "olympic", "goal", "wicket",
		"coach", "league", "championship", "tennis", "world cup", "innings",
	}},
	{Section: domain.SectionEntertainment, Keywords: []string{
		"film", "movie", "box office", "actor", "actress", "bollywood", "kollywood", "music", "album",
		"trailer", "web series", "netflix", "celebrity", "oscar",
	}},
	{Section: domain.SectionScience, Keywords: []string{
		"space", "research", "scientists", "study", "climate", "species", "telescope", "physics", "planet",
	}},
	{Section: domain.SectionHealth, Keywords: []string{
		"health", "hospital", "vaccine", "virus", "disease", "doctor", "covid", "cancer", "diet", "who",
	}},
}
