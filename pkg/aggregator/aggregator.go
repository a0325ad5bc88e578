// Package aggregator runs the section pipeline: parallel fetch, normalization, scoring, clustering,
// filtering, ranking and caching. It also assembles the cross-section front page.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/newsdesk/pkg/breaking"
	"github.com/umputun/newsdesk/pkg/cache"
	"github.com/umputun/newsdesk/pkg/classify"
	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/dedup"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/frontpage"
	"github.com/umputun/newsdesk/pkg/geo"
	"github.com/umputun/newsdesk/pkg/normalize"
	"github.com/umputun/newsdesk/pkg/scoring"
	"github.com/umputun/newsdesk/pkg/sentiment"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . FeedFetcher
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . StatusRecorder

var (
	// ErrNoData is returned when every feed of a section failed
	ErrNoData = errors.New("no data available for this section")
	// ErrUnknownSection is returned for a section missing from configuration
	ErrUnknownSection = errors.New("unknown section")
	// ErrRanking reports malformed ranking settings, recovered by returning the unsorted list
	ErrRanking = errors.New("ranking failed")
)

// FeedFetcher fetches one feed url through whatever endpoint works
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error)
}

// StatusRecorder stores per feed fetch outcomes
type StatusRecorder interface {
	RecordSuccess(ctx context.Context, section, url, endpoint string, items int) error
	RecordFailure(ctx context.Context, section, url, errMsg string) error
}

// Params defines aggregator dependencies. Sections, Settings and Fetcher are required,
// everything else gets a default instance.
type Params struct {
	Sections   map[string][]string
	Settings   *config.Settings
	Fetcher    FeedFetcher
	Recorder   StatusRecorder
	Normalizer *normalize.Normalizer
	Scorer     *scoring.Engine
	Clusterer  *dedup.Clusterer
	Composer   *frontpage.Composer
	Cache      *cache.SectionCache
	MaxWorkers int
	Now        func() time.Time
}

// Aggregator serves ranked sections and the front page
type Aggregator struct {
	sections   map[string][]string
	settings   *config.Settings
	fetcher    FeedFetcher
	recorder   StatusRecorder
	normalizer *normalize.Normalizer
	scorer     *scoring.Engine
	clusterer  *dedup.Clusterer
	composer   *frontpage.Composer
	cache      *cache.SectionCache
	maxWorkers int
	now        func() time.Time

	group singleflight.Group
	wg    sync.WaitGroup // background refreshes
}

// New makes an aggregator
func New(p Params) *Aggregator {
	res := &Aggregator{
		sections:   p.Sections,
		settings:   p.Settings,
		fetcher:    p.Fetcher,
		recorder:   p.Recorder,
		normalizer: p.Normalizer,
		scorer:     p.Scorer,
		clusterer:  p.Clusterer,
		composer:   p.Composer,
		cache:      p.Cache,
		maxWorkers: p.MaxWorkers,
		now:        p.Now,
	}
	if res.settings == nil {
		def := config.DefaultSettings()
		res.settings = &def
	}
	if res.sections == nil {
		res.sections = map[string][]string{}
	}
	if res.now == nil {
		res.now = time.Now
	}
	if res.maxWorkers <= 0 {
		res.maxWorkers = 8
	}
	if res.normalizer == nil {
		res.normalizer = normalize.New(classify.New(), sentiment.New()).WithClock(res.now)
	}
	if res.scorer == nil {
		tuning := res.settings.Tuning
		res.scorer = scoring.New(scoring.Params{
			Settings: res.settings,
			Detector: breaking.New(breaking.Config{Similarity: tuning.BreakingSimilarity,
				Window: tuning.BreakingWindow, Retention: tuning.BreakingRetention}),
			Corpus: scoring.NewNoveltyCorpus(0),
			Now:    res.now,
		})
	}
	if res.clusterer == nil {
		res.clusterer = dedup.New(res.settings.Tuning.ClusterSimilarity, res.settings.Tuning.ConsensusBoostPerSource)
	}
	if res.composer == nil {
		res.composer = frontpage.New(geo.New())
	}
	if res.cache == nil {
		res.cache = cache.New(res.settings.CacheTTL)
	}
	return res
}

// Sections returns configured section names in sorted order
func (a *Aggregator) Sections() []string {
	res := make([]string, 0, len(a.sections))
	for name := range a.sections {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Section returns the ranked article list of a section. A fresh cache entry is returned as is,
// a stale one is returned while a background refresh replaces it. A refresh where every feed failed
// drops the entry, so the next call reports ErrNoData.
func (a *Aggregator) Section(ctx context.Context, name string) ([]domain.Article, error) {
	urls, ok := a.sections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	if len(urls) == 0 {
		return []domain.Article{}, nil
	}

	if a.settings.EnableCache {
		if articles, fresh, found := a.cache.Get(name); found {
			if !fresh {
				a.refreshInBackground(name)
			}
			return articles, nil
		}
	}
	return a.Refresh(ctx, name)
}

// Refresh rebuilds a section ignoring the cache. Concurrent refreshes of the same section share one run.
// Canceling ctx stops waiting but doesn't cancel in-flight feed fetches.
func (a *Aggregator) Refresh(ctx context.Context, name string) ([]domain.Article, error) {
	if _, ok := a.sections[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	ch := a.group.DoChan(name, func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx), name)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		articles := res.Val.([]domain.Article)
		out := make([]domain.Article, len(articles))
		copy(out, articles)
		return out, nil
	}
}

// Wait blocks until background refreshes are done
func (a *Aggregator) Wait() {
	a.wg.Wait()
}

func (a *Aggregator) refreshInBackground(name string) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if _, err := a.Refresh(context.Background(), name); err != nil {
			lgr.Printf("[WARN] background refresh of %s failed: %v", name, err)
		}
	}()
}

// refresh fetches every feed of the section in parallel and runs the pipeline on what succeeded
func (a *Aggregator) refresh(ctx context.Context, name string) ([]domain.Article, error) {
	urls := a.sections[name]
	if len(urls) == 0 {
		return []domain.Article{}, nil
	}
	st := a.now()
	lgr.Printf("[DEBUG] refreshing section %s, %d feeds", name, len(urls))

	perFeed := make([][]domain.Article, len(urls))
	errs := make([]error, len(urls))
	var g errgroup.Group
	g.SetLimit(a.maxWorkers)
	for i, u := range urls {
		g.Go(func() error {
			perFeed[i], errs[i] = a.fetchFeed(ctx, name, u)
			return nil // feed failures never abort the section
		})
	}
	_ = g.Wait()

	failed := 0
	articles := []domain.Article{}
	for i := range urls {
		if errs[i] != nil {
			failed++
			continue
		}
		articles = append(articles, perFeed[i]...)
	}
	if failed == len(urls) {
		lgr.Printf("[WARN] all %d feeds of section %s failed", failed, name)
		a.cache.Invalidate(name) // expired data must not outlive a failed refresh
		return nil, fmt.Errorf("section %s: %w", name, ErrNoData)
	}

	articles = a.process(name, articles)
	if a.settings.EnableCache {
		a.cache.Set(name, articles)
	}
	lgr.Printf("[INFO] section %s refreshed, %d articles, %d/%d feeds failed, took %v",
		name, len(articles), failed, len(urls), a.now().Sub(st))
	return articles, nil
}

// fetchFeed fetches and normalizes a single feed, recording the outcome
func (a *Aggregator) fetchFeed(ctx context.Context, section, feedURL string) ([]domain.Article, error) {
	raw, err := a.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		lgr.Printf("[WARN] feed %s of section %s failed: %v", feedURL, section, err)
		if a.recorder != nil {
			if recErr := a.recorder.RecordFailure(ctx, section, feedURL, err.Error()); recErr != nil {
				lgr.Printf("[WARN] failed to record feed failure for %s: %v", feedURL, recErr)
			}
		}
		return nil, err
	}
	if raw == nil {
		raw = &domain.RawFeed{}
	}

	if a.recorder != nil {
		if recErr := a.recorder.RecordSuccess(ctx, section, feedURL, raw.Endpoint, len(raw.Items)); recErr != nil {
			lgr.Printf("[WARN] failed to record feed success for %s: %v", feedURL, recErr)
		}
	}
	articles := a.normalizer.NormalizeFeed(raw, section)
	lgr.Printf("[DEBUG] feed %s via %s, %d items, %d articles", feedURL, raw.Endpoint, len(raw.Items), len(articles))
	return articles, nil
}
