// Package feed retrieves remote feeds through an ordered set of endpoint strategies
// and renders ranked articles back as RSS.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/domain"
)

// ErrAllEndpointsExhausted is returned when every endpoint strategy failed for a feed
var ErrAllEndpointsExhausted = errors.New("all endpoints exhausted")

// FetchError is a failure of a single endpoint attempt
type FetchError struct {
	Endpoint string
	URL      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("endpoint %s, feed %s: %v", e.Endpoint, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EndpointStats is a snapshot of an endpoint rotation state
type EndpointStats struct {
	Name        string     `json:"name"`
	Failures    int64      `json:"failures"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
	Preferred   bool       `json:"preferred"`
}

type endpointState struct {
	failures    atomic.Int64
	lastSuccess atomic.Int64 // unix nano, 0 if never succeeded
}

// Fetcher tries endpoint strategies starting from the last successful one.
// Rotation state is shared by concurrent fetches and updated without locks.
type Fetcher struct {
	strategies []Strategy
	state      []*endpointState
	preferred  atomic.Int32
	timeout    time.Duration
}

// NewFetcher makes a fetcher with a per-attempt timeout
func NewFetcher(timeout time.Duration, strategies ...Strategy) *Fetcher {
	res := &Fetcher{strategies: strategies, timeout: timeout, state: make([]*endpointState, len(strategies))}
	for i := range res.state {
		res.state[i] = &endpointState{}
	}
	return res
}

// Fetch retrieves the feed, failing only if every strategy failed. The returned error wraps
// ErrAllEndpointsExhausted and the last FetchError.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error) {
	if len(f.strategies) == 0 {
		return nil, fmt.Errorf("%w: no endpoints configured", ErrAllEndpointsExhausted)
	}

	var lastErr error
	for _, idx := range f.order() {
		strategy := f.strategies[idx]
		feed, err := f.attempt(ctx, strategy, feedURL)
		if err != nil {
			f.state[idx].failures.Add(1)
			lastErr = &FetchError{Endpoint: strategy.Name(), URL: feedURL, Err: err}
			lgr.Printf("[DEBUG] endpoint %s failed for %s: %v", strategy.Name(), feedURL, err)
			if ctx.Err() != nil {
				break // caller gave up, no point trying the rest
			}
			continue
		}

		f.state[idx].failures.Store(0)
		f.state[idx].lastSuccess.Store(time.Now().UnixNano())
		if prev := f.preferred.Swap(int32(idx)); int(prev) != idx { //nolint:gosec // endpoint count is tiny
			lgr.Printf("[INFO] preferred endpoint switched from %s to %s", f.strategies[prev].Name(), strategy.Name())
		}
		feed.Endpoint = strategy.Name()
		return feed, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAllEndpointsExhausted, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, s Strategy, feedURL string) (*domain.RawFeed, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	feed, err := s.Fetch(attemptCtx, feedURL)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, errors.New("empty response")
	}
	return feed, nil
}

// order returns strategy indexes for one call: the preferred one first, then the rest in wrap-around
// order, biased toward endpoints with fewer recorded failures
func (f *Fetcher) order() []int {
	n := len(f.strategies)
	start := int(f.preferred.Load())
	if start < 0 || start >= n {
		start = 0
	}
	res := make([]int, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, (start+i)%n)
	}
	rest := res[1:]
	failures := make(map[int]int64, n)
	for _, idx := range rest {
		failures[idx] = f.state[idx].failures.Load()
	}
	sort.SliceStable(rest, func(i, j int) bool { return failures[rest[i]] < failures[rest[j]] })
	return res
}

// Stats returns the rotation state of all endpoints
func (f *Fetcher) Stats() []EndpointStats {
	preferred := int(f.preferred.Load())
	res := make([]EndpointStats, 0, len(f.strategies))
	for i, s := range f.strategies {
		st := EndpointStats{Name: s.Name(), Failures: f.state[i].failures.Load(), Preferred: i == preferred}
		if ts := f.state[i].lastSuccess.Load(); ts > 0 {
			t := time.Unix(0, ts)
			st.LastSuccess = &t
		}
		res = append(res, st)
	}
	return res
}
