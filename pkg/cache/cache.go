// Package cache keeps ranked section results for a short TTL
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/umputun/newsdesk/pkg/domain"
)

// DefaultTTL is the section cache lifetime
const DefaultTTL = 5 * time.Minute

type entry struct {
	articles []domain.Article
	storedAt time.Time
}

// SectionCache stores article lists per section, safe for concurrent use
type SectionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// Stats is cache introspection
type Stats struct {
	Sections int          `json:"sections"`
	Entries  []EntryStats `json:"entries"`
}

// EntryStats describes a cached section
type EntryStats struct {
	Section    string  `json:"section"`
	AgeSeconds float64 `json:"age_seconds"`
	Items      int     `json:"items"`
	Stale      bool    `json:"stale"`
}

// New makes a cache, ttl <= 0 uses DefaultTTL
func New(ttl time.Duration) *SectionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SectionCache{ttl: ttl, entries: map[string]entry{}, now: time.Now}
}

// Get returns a copy of the cached articles. fresh is false when the entry is older than ttl,
// ok is false when nothing is cached for the section.
func (c *SectionCache) Get(section string) (articles []domain.Article, fresh, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.entries[section]
	if !found {
		return nil, false, false
	}
	res := make([]domain.Article, len(e.articles))
	copy(res, e.articles)
	return res, c.now().Sub(e.storedAt) < c.ttl, true
}

// Set replaces the section entry
func (c *SectionCache) Set(section string, articles []domain.Article) {
	stored := make([]domain.Article, len(articles))
	copy(stored, articles)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[section] = entry{articles: stored, storedAt: c.now()}
}

// Invalidate drops the section entry
func (c *SectionCache) Invalidate(section string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, section)
}

// Stats returns per section age, size and staleness, ordered by section
func (c *SectionCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	res := Stats{Sections: len(c.entries), Entries: make([]EntryStats, 0, len(c.entries))}
	for name, e := range c.entries {
		age := now.Sub(e.storedAt)
		res.Entries = append(res.Entries, EntryStats{
			Section:    name,
			AgeSeconds: age.Seconds(),
			Items:      len(e.articles),
			Stale:      age >= c.ttl,
		})
	}
	sort.Slice(res.Entries, func(i, j int) bool { return res.Entries[i].Section < res.Entries[j].Section })
	return res
}
