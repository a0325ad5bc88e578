package aggregator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/classify"
	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/normalize"
)

func titles(articles []domain.Article) []string {
	res := make([]string, len(articles))
	for i, a := range articles {
		res[i] = a.Title
	}
	return res
}

func TestAggregator_FilterSource(t *testing.T) {
	agg := newAggregator(t, map[string][]string{"world": {"https://reuters.example.com/rss", "https://bbc.example.com/rss"}},
		fetcherFor(feeds()), func(s *config.Settings) { s.NewsSources = map[string]bool{"BBC News": false, "Reuters": true} })

	articles, err := agg.Section(context.Background(), "world")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	for _, a := range articles {
		assert.Equal(t, "Reuters", a.Source)
	}
}

func TestAggregator_FilterKeyword(t *testing.T) {
	data := map[string]*domain.RawFeed{"https://biz.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
		rawItem("Stock market rally lifts shares", "https://biz.example.com/1", time.Hour),
		rawItem("Striker scores twice as team wins the final", "https://biz.example.com/2", time.Hour),
		rawItem("Weather stays mild this week", "https://biz.example.com/3", time.Hour),
	}}}
	s := config.DefaultSettings()
	s.FilteringMode = config.FilteringKeyword
	s.NewsSources = map[string]bool{"Reuters": false} // no allowlist in keyword mode
	now := func() time.Time { return testNow }
	cls := classify.NewWith(nil, []classify.SectionKeywords{
		{Section: "business", Keywords: []string{"stock", "market", "shares"}},
		{Section: "sports", Keywords: []string{"striker", "team", "final"}},
	})
	agg := New(Params{
		Sections:   map[string][]string{"business": {"https://biz.example.com/rss"}},
		Settings:   &s,
		Fetcher:    fetcherFor(data),
		Normalizer: normalize.New(cls, nil).WithClock(now),
		Now:        now,
	})

	articles, err := agg.Section(context.Background(), "business")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Stock market rally lifts shares", "Weather stays mild this week"}, titles(articles),
		"article classified into sports is dropped, inconclusive one keeps the feed section")
}

func TestAggregator_Freshness(t *testing.T) {
	mixed := map[string]*domain.RawFeed{"https://f.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
		rawItem("Fresh report on harbour expansion", "https://f.example.com/1", time.Hour),
		rawItem("Old report on railway budget", "https://f.example.com/2", 72*time.Hour),
		{Title: "Undated note about city parks", Link: "https://f.example.com/3", Published: "sometime"},
	}}}
	allOld := map[string]*domain.RawFeed{"https://f.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
		rawItem("Old report on railway budget", "https://f.example.com/2", 72*time.Hour),
		rawItem("Ancient story on river cleanup", "https://f.example.com/4", 100*time.Hour),
	}}}
	sections := map[string][]string{"world": {"https://f.example.com/rss"}}

	tbl := []struct {
		name   string
		data   map[string]*domain.RawFeed
		strict bool
		want   []string
	}{
		{name: "lenient drops old keeps undated", data: mixed, strict: false,
			want: []string{"Fresh report on harbour expansion", "Undated note about city parks"}},
		{name: "strict drops old and undated", data: mixed, strict: true,
			want: []string{"Fresh report on harbour expansion"}},
		{name: "lenient falls back when everything is old", data: allOld, strict: false,
			want: []string{"Old report on railway budget", "Ancient story on river cleanup"}},
		{name: "strict never falls back", data: allOld, strict: true, want: []string{}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			agg := newAggregator(t, sections, fetcherFor(tt.data), func(s *config.Settings) { s.StrictFreshness = tt.strict })
			articles, err := agg.Section(context.Background(), "world")
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, titles(articles))
		})
	}
}

func TestAggregator_RankingModes(t *testing.T) {
	data := map[string]*domain.RawFeed{
		"https://reuters.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
			rawItem("Parliament passes landmark climate bill", "https://r.example.com/1", 5*time.Hour),
		}},
		"https://blog.example.com/rss": {Title: "Tiny Blog", Items: []domain.RawItem{
			rawItem("My garden tomatoes this summer", "https://blog.example.com/1", 10*time.Minute),
			rawItem("Weekend hike photos from the hills", "https://blog.example.com/2", 20*time.Hour),
		}},
	}
	sections := map[string][]string{"world": {"https://reuters.example.com/rss", "https://blog.example.com/rss"}}

	t.Run("smart orders by score", func(t *testing.T) {
		agg := newAggregator(t, sections, fetcherFor(data), nil)
		articles, err := agg.Section(context.Background(), "world")
		require.NoError(t, err)
		require.Len(t, articles, 3)
		for i := 1; i < len(articles); i++ {
			assert.GreaterOrEqual(t, articles[i-1].ImpactScore, articles[i].ImpactScore)
		}
	})

	t.Run("legacy orders by publish time", func(t *testing.T) {
		agg := newAggregator(t, sections, fetcherFor(data), func(s *config.Settings) { s.RankingMode = config.RankingLegacy })
		articles, err := agg.Section(context.Background(), "world")
		require.NoError(t, err)
		assert.Equal(t, []string{"My garden tomatoes this summer", "Parliament passes landmark climate bill",
			"Weekend hike photos from the hills"}, titles(articles))
	})

	t.Run("unknown mode returns unsorted capped list", func(t *testing.T) {
		agg := newAggregator(t, map[string][]string{"world": {"https://blog.example.com/rss", "https://reuters.example.com/rss"}},
			fetcherFor(data), func(s *config.Settings) {
				s.RankingMode = "bogus"
				s.SectionLimit = 2
			})
		articles, err := agg.Section(context.Background(), "world")
		require.NoError(t, err)
		assert.Equal(t, []string{"My garden tomatoes this summer", "Weekend hike photos from the hills"}, titles(articles))
	})
}

func TestRank(t *testing.T) {
	articles := []domain.Article{{ID: "a", ImpactScore: 1}, {ID: "b", ImpactScore: 3}, {ID: "c", ImpactScore: 3}}
	require.NoError(t, rank(articles, config.RankingSmart))
	assert.Equal(t, "b", articles[0].ID)
	assert.Equal(t, "c", articles[1].ID, "ties keep input order")

	err := rank(articles, "")
	assert.ErrorIs(t, err, ErrRanking)
}

func TestAggregator_SectionLimit(t *testing.T) {
	headlines := []string{"Volcano erupts near island", "Parliament passes budget", "Chess prodigy wins title",
		"Flooding closes motorway", "Bakery chain expands abroad", "Rocket launch delayed again",
		"Orchestra unveils winter program", "Zoo welcomes baby giraffe", "Marathon route announced",
		"Library gets digital makeover"}
	items := make([]domain.RawItem, 0, len(headlines))
	for i, h := range headlines {
		items = append(items, rawItem(h, fmt.Sprintf("https://l.example.com/%d", i), time.Duration(i)*time.Minute))
	}
	data := map[string]*domain.RawFeed{"https://l.example.com/rss": {Title: "Reuters", Items: items}}
	agg := newAggregator(t, map[string][]string{"world": {"https://l.example.com/rss"}}, fetcherFor(data),
		func(s *config.Settings) { s.SectionLimit = 4 })

	articles, err := agg.Section(context.Background(), "world")
	require.NoError(t, err)
	assert.Len(t, articles, 4)
}

func TestAggregator_FrontPage(t *testing.T) {
	data := map[string]*domain.RawFeed{
		"https://w.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
			rawItem("Summit leaders sign trade pact", "https://w.example.com/1", time.Hour),
			rawItem("Earthquake shakes coastal towns", "https://w.example.com/2", 2*time.Hour),
		}},
		"https://b.example.com/rss": {Title: "Reuters", Items: []domain.RawItem{
			rawItem("Airline posts record quarterly profit", "https://b.example.com/1", time.Hour),
			// same link as a world article, kept once on the front page
			rawItem("Summit leaders sign trade pact", "https://w.example.com/1", time.Hour),
		}},
	}

	t.Run("union over sections", func(t *testing.T) {
		agg := newAggregator(t, map[string][]string{
			"world":    {"https://w.example.com/rss"},
			"business": {"https://b.example.com/rss"},
			"sports":   {"https://down.example.com/rss"},
		}, fetcherFor(data), func(s *config.Settings) {
			s.MaxTopicPercent = 100
			s.MaxGeoPercent = 100
		})
		articles, err := agg.FrontPage(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, articles, 3, "failed section is skipped, duplicate id kept once")
		ids := map[string]bool{}
		for _, a := range articles {
			assert.False(t, ids[a.ID])
			ids[a.ID] = true
		}

		limited, err := agg.FrontPage(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("every section failed", func(t *testing.T) {
		agg := newAggregator(t, map[string][]string{"world": {"https://down.example.com/rss"}}, fetcherFor(data), nil)
		_, err := agg.FrontPage(context.Background(), 10)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("no sections", func(t *testing.T) {
		agg := newAggregator(t, map[string][]string{}, fetcherFor(data), nil)
		articles, err := agg.FrontPage(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})
}
