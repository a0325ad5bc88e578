package aggregator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/dedup"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/frontpage"
)

// process runs filter, score, cluster, freshness, rank and cap over the fetched articles of a section
func (a *Aggregator) process(section string, articles []domain.Article) []domain.Article {
	articles = a.filter(section, articles)
	a.scorer.ScoreAll(articles)
	articles = a.clusterer.Deduplicate(articles)
	articles = a.fresh(articles)

	if err := rank(articles, a.settings.RankingMode); err != nil {
		lgr.Printf("[WARN] section %s returned unsorted: %v", section, err)
	}

	if limit := a.settings.SectionLimit; limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

// filter applies the filtering mode. Source mode drops disabled publishers,
// keyword mode drops articles classified into another section.
func (a *Aggregator) filter(section string, articles []domain.Article) []domain.Article {
	res := make([]domain.Article, 0, len(articles))
	for _, art := range articles {
		switch a.settings.FilteringMode {
		case config.FilteringKeyword:
			if art.Section != section {
				continue
			}
		default:
			if !a.settings.SourceAllowed(art.Source) {
				continue
			}
		}
		res = append(res, art)
	}
	return res
}

// fresh drops articles older than hide_older_than_hours. In strict mode undated articles are dropped too
// and the result may be empty, otherwise a filter that removes everything is skipped.
func (a *Aggregator) fresh(articles []domain.Article) []domain.Article {
	maxAge := time.Duration(a.settings.HideOlderThanHours) * time.Hour
	if maxAge <= 0 {
		return articles
	}
	now := a.now()
	res := make([]domain.Article, 0, len(articles))
	for _, art := range articles {
		if a.settings.StrictFreshness && !art.DateParsed {
			continue
		}
		if art.Age(now) > maxAge {
			continue
		}
		res = append(res, art)
	}
	if len(res) == 0 && len(articles) > 0 && !a.settings.StrictFreshness {
		lgr.Printf("[DEBUG] no article younger than %v, keeping %d older ones", maxAge, len(articles))
		return articles
	}
	return res
}

// rank orders articles in place, smart by impact score and legacy by publish time, both newest/highest first
func rank(articles []domain.Article, mode string) error {
	switch mode {
	case config.RankingSmart:
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].ImpactScore > articles[j].ImpactScore })
	case config.RankingLegacy:
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Published.After(articles[j].Published) })
	default:
		return fmt.Errorf("%w: unknown ranking mode %q", ErrRanking, mode)
	}
	return nil
}

// FrontPage builds a diversity capped selection over all sections. Sections that fail are skipped,
// ErrNoData is returned only when every section failed. limit <= 0 uses front_page_limit.
func (a *Aggregator) FrontPage(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = a.settings.FrontPageLimit
	}
	names := a.Sections()
	if len(names) == 0 {
		return []domain.Article{}, nil
	}

	results := make([][]domain.Article, len(names))
	var failed int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			articles, err := a.Section(ctx, name)
			if err != nil {
				lgr.Printf("[WARN] front page skips section %s: %v", name, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			results[i] = articles
		}()
	}
	wg.Wait()

	if failed == len(names) {
		return nil, fmt.Errorf("front page: %w", ErrNoData)
	}

	pool := []domain.Article{}
	for _, articles := range results {
		pool = append(pool, articles...)
	}
	pool = dedup.UniqueByID(pool)
	return a.composer.Compose(pool, frontpage.Params{
		Limit:           limit,
		MaxTopicPercent: a.settings.MaxTopicPercent,
		MaxGeoPercent:   a.settings.MaxGeoPercent,
	}), nil
}
