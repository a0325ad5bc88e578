// Package breaking detects stories corroborated by several sources within a short window.
// The detector keeps cross-call state and is safe for concurrent use.
package breaking

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/domain"
)

const (
	maxScore   = 3.0
	minSources = 2
)

// Config defines detector thresholds
type Config struct {
	Similarity    float64       // token overlap above which titles are the same story
	Window        time.Duration // corroboration and article age window
	Retention     time.Duration // stories older than this are pruned
	PruneInterval time.Duration // how often observations trigger pruning
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{Similarity: 0.7, Window: 60 * time.Minute, Retention: 120 * time.Minute, PruneInterval: 10 * time.Minute}
}

// Result is the verdict for one article
type Result struct {
	Breaking bool
	Score    float64
}

// Story is a snapshot of a tracked story
type Story struct {
	Key           string    `json:"key"`
	Title         string    `json:"title"`
	FirstSeen     time.Time `json:"first_seen"`
	Sources       []string  `json:"sources"`
	Corroboration int       `json:"corroboration"`
}

type story struct {
	title         string
	tokens        map[string]struct{}
	firstSeen     time.Time
	sources       map[string]struct{}
	corroboration int // never decreases
}

// Detector tracks stories by normalized title
type Detector struct {
	cfg       Config
	mu        sync.Mutex
	stories   map[string]*story
	flagged   map[string]string // article id -> story key
	lastPrune time.Time
}

// New makes a detector, zero config fields are taken from DefaultConfig
func New(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.Similarity <= 0 {
		cfg.Similarity = def.Similarity
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Retention <= 0 {
		cfg.Retention = def.Retention
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = def.PruneInterval
	}
	return &Detector{cfg: cfg, stories: map[string]*story{}, flagged: map[string]string{}}
}

// Observe records the article and reports whether it is breaking at time now
func (d *Detector) Observe(a domain.Article, now time.Time) Result {
	key := NormalizeTitle(a.Title)
	if key == "" {
		return Result{}
	}
	tokens := tokenSet(key)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lastPrune.IsZero() {
		d.lastPrune = now
	}
	if now.Sub(d.lastPrune) >= d.cfg.PruneInterval {
		d.pruneLocked(now)
	}

	matchKey, match := d.bestMatch(tokens)
	if match == nil {
		d.stories[key] = &story{
			title:         a.Title,
			tokens:        tokens,
			firstSeen:     now,
			sources:       map[string]struct{}{a.Source: {}},
			corroboration: 1,
		}
		return Result{}
	}

	if now.Sub(match.firstSeen) < d.cfg.Window {
		if _, seen := match.sources[a.Source]; !seen {
			match.sources[a.Source] = struct{}{}
			match.corroboration++
		}
	}

	age := a.Age(now)
	if len(match.sources) < minSources || age >= d.cfg.Window {
		return Result{}
	}

	d.flagged[a.ID] = matchKey
	return Result{Breaking: true, Score: Score(age, d.cfg.Window)}
}

// bestMatch returns the tracked story most similar to tokens, above the threshold
func (d *Detector) bestMatch(tokens map[string]struct{}) (string, *story) {
	var bestKey string
	var best *story
	bestSim := d.cfg.Similarity
	for k, s := range d.stories {
		sim := Similarity(tokens, s.tokens)
		if sim > bestSim || (sim == bestSim && best != nil && k < bestKey) {
			bestKey, best, bestSim = k, s, sim
		}
	}
	return bestKey, best
}

// Prune removes stories older than retention and their flags, returns the number of removed stories
func (d *Detector) Prune(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pruneLocked(now)
}

func (d *Detector) pruneLocked(now time.Time) int {
	d.lastPrune = now
	removed := 0
	for k, s := range d.stories {
		if now.Sub(s.firstSeen) > d.cfg.Retention {
			delete(d.stories, k)
			removed++
		}
	}
	for id, k := range d.flagged {
		if _, ok := d.stories[k]; !ok {
			delete(d.flagged, id)
		}
	}
	if removed > 0 {
		lgr.Printf("[DEBUG] pruned %d breaking stories, %d tracked", removed, len(d.stories))
	}
	return removed
}

// Flagged reports whether the article was flagged breaking for a still tracked story
func (d *Detector) Flagged(articleID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.flagged[articleID]
	return ok
}

// Stories returns tracked stories with at least minSources sources, newest first
func (d *Detector) Stories(minSources int) []Story {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := make([]Story, 0, len(d.stories))
	for k, s := range d.stories {
		if len(s.sources) < minSources {
			continue
		}
		sources := make([]string, 0, len(s.sources))
		for src := range s.sources {
			sources = append(sources, src)
		}
		sort.Strings(sources)
		res = append(res, Story{Key: k, Title: s.title, FirstSeen: s.firstSeen, Sources: sources, Corroboration: s.corroboration})
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].FirstSeen.Equal(res[j].FirstSeen) {
			return res[i].FirstSeen.After(res[j].FirstSeen)
		}
		return res[i].Key < res[j].Key
	})
	return res
}

// Len returns the number of tracked stories
func (d *Detector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.stories)
}

// Score is the time decayed breaking score, ln(window/minutes) capped at 3
func Score(age, window time.Duration) float64 {
	minutes := math.Max(1, age.Minutes())
	return math.Min(maxScore, math.Log(window.Minutes()/minutes))
}

// NormalizeTitle lowercases, drops punctuation and collapses whitespace
func NormalizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Similarity is intersection over union of two token sets
func Similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func tokenSet(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	res := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		res[f] = struct{}{}
	}
	return res
}
