// Package dedup collapses duplicate articles and clusters same-story articles by title similarity
package dedup

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/umputun/newsdesk/pkg/domain"
)

// Clusterer merges articles reporting the same story
type Clusterer struct {
	threshold      float64
	boostPerSource float64
	metric         *metrics.SorensenDice
}

// New makes a clusterer. threshold is the minimal title similarity to join a cluster,
// boostPerSource is the score boost for every source beyond the first.
func New(threshold, boostPerSource float64) *Clusterer {
	return &Clusterer{threshold: threshold, boostPerSource: boostPerSource, metric: metrics.NewSorensenDice()}
}

// Deduplicate drops exact id duplicates and collapses every cluster of similar titles to its
// highest scored article. Output keeps the order of cluster seeds.
func (c *Clusterer) Deduplicate(articles []domain.Article) []domain.Article {
	unique := UniqueByID(articles)
	titles := make([]string, len(unique))
	for i, a := range unique {
		titles[i] = strings.ToLower(strings.TrimSpace(a.Title))
	}

	assigned := make([]bool, len(unique))
	res := make([]domain.Article, 0, len(unique))
	for i := range unique {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		cluster := []int{i}
		for j := i + 1; j < len(unique); j++ {
			if assigned[j] {
				continue
			}
			if c.Similarity(titles[i], titles[j]) >= c.threshold {
				assigned[j] = true
				cluster = append(cluster, j)
			}
		}
		res = append(res, c.collapse(unique, cluster))
	}
	return res
}

// collapse returns the cluster representative annotated with sources count, size and consensus boost
func (c *Clusterer) collapse(articles []domain.Article, cluster []int) domain.Article {
	best := cluster[0]
	sources := make(map[string]struct{}, len(cluster))
	for _, idx := range cluster {
		if articles[idx].ImpactScore > articles[best].ImpactScore {
			best = idx
		}
		sources[articles[idx].Source] = struct{}{}
	}

	rep := articles[best]
	rep.SourceCount = len(sources)
	rep.ClusterSize = len(cluster)
	rep.ImpactScore *= 1 + float64(rep.SourceCount-1)*c.boostPerSource
	return rep
}

// Similarity returns Sørensen–Dice similarity of two titles
func (c *Clusterer) Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, c.metric)
}

// UniqueByID keeps the first article of every id
func UniqueByID(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	res := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		res = append(res, a)
	}
	return res
}
