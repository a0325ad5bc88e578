// Package frontpage composes a diversity capped cross-section selection of articles
package frontpage

import (
	"sort"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/geo"
)

// Locator maps article text to a location bucket
type Locator interface {
	Locate(text string) geo.Location
}

// Composer selects front page articles
type Composer struct {
	locator Locator
}

// Params define a single composition
type Params struct {
	Limit           int
	MaxTopicPercent int
	MaxGeoPercent   int
}

// New makes a composer
func New(locator Locator) *Composer {
	return &Composer{locator: locator}
}

// Compose walks the pool by score and admits an article only while both its topic and geography
// buckets are under their caps. Skipped articles are never reconsidered, so the result may hold
// fewer than Limit articles.
func (c *Composer) Compose(pool []domain.Article, p Params) []domain.Article {
	if p.Limit <= 0 || len(pool) == 0 {
		return []domain.Article{}
	}
	topicCap := p.Limit * p.MaxTopicPercent / 100
	geoCap := p.Limit * p.MaxGeoPercent / 100

	sorted := make([]domain.Article, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ImpactScore > sorted[j].ImpactScore })

	topics := map[string]int{}
	geos := map[string]int{}
	res := make([]domain.Article, 0, p.Limit)
	for _, a := range sorted {
		if len(res) >= p.Limit {
			break
		}
		topic := a.Section
		bucket := c.locator.Locate(a.Text()).Bucket()
		if topics[topic] >= topicCap || geos[bucket] >= geoCap {
			continue
		}
		topics[topic]++
		geos[bucket]++
		res = append(res, a)
	}
	return res
}
