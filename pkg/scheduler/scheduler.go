// Package scheduler keeps sections warm in the background and prunes the breaking story tracker
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/domain"
)

//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . SectionRefresher
//go:generate moq -out mocks/pruner.go -pkg mocks -skip-ensure -fmt goimports . StoryPruner

// SectionRefresher rebuilds a section ignoring its cache entry
type SectionRefresher interface {
	Sections() []string
	Refresh(ctx context.Context, name string) ([]domain.Article, error)
}

// StoryPruner drops expired tracked stories
type StoryPruner interface {
	Prune(now time.Time) int
}

// Params defines scheduler dependencies and intervals
type Params struct {
	Refresher       SectionRefresher
	Pruner          StoryPruner
	RefreshInterval time.Duration // 0 disables background refresh
	PruneInterval   time.Duration
	MaxWorkers      int
}

// Scheduler runs periodic section refresh and story pruning
type Scheduler struct {
	refresher       SectionRefresher
	pruner          StoryPruner
	refreshInterval time.Duration
	pruneInterval   time.Duration
	maxWorkers      int
	wg              sync.WaitGroup
	cancel          context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.PruneInterval <= 0 {
		p.PruneInterval = 10 * time.Minute
	}
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 2
	}
	return &Scheduler{
		refresher:       p.Refresher,
		pruner:          p.Pruner,
		refreshInterval: p.RefreshInterval,
		pruneInterval:   p.PruneInterval,
		maxWorkers:      p.MaxWorkers,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.refresher != nil && s.refreshInterval > 0 {
		s.wg.Add(1)
		go s.refreshWorker(ctx)
	}

	if s.pruner != nil {
		s.wg.Add(1)
		go s.pruneWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with refresh interval %v, prune interval %v", s.refreshInterval, s.pruneInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// refreshWorker refreshes all sections right away and then on every tick
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	s.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

// refreshAll refreshes every section with bounded concurrency
func (s *Scheduler) refreshAll(ctx context.Context) {
	sections := s.refresher.Sections()
	lgr.Printf("[DEBUG] refreshing %d sections", len(sections))

	sem := make(chan struct{}, s.maxWorkers)
	var wg sync.WaitGroup

	for _, name := range sections {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}

			articles, err := s.refresher.Refresh(ctx, name)
			if err != nil {
				lgr.Printf("[WARN] background refresh of section %s failed: %v", name, err)
				return
			}
			lgr.Printf("[DEBUG] section %s refreshed in background, %d articles", name, len(articles))
		}(name)
	}

	wg.Wait()
}

// pruneWorker drops expired breaking stories on every tick
func (s *Scheduler) pruneWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.pruner.Prune(time.Now()); n > 0 {
				lgr.Printf("[DEBUG] pruned %d expired breaking stories", n)
			}
		}
	}
}
