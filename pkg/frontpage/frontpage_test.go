package frontpage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/geo"
)

func count(articles []domain.Article, key func(domain.Article) string) map[string]int {
	res := map[string]int{}
	for _, a := range articles {
		res[key(a)]++
	}
	return res
}

func TestComposer_TopicCap(t *testing.T) {
	places := []string{"Chennai", "Mumbai", "Kerala", "Japan"}
	var pool []domain.Article
	k := 0
	for i := 0; i < 10; i++ {
		for _, section := range []string{"politics", "sports"} {
			pool = append(pool, domain.Article{
				ID:          fmt.Sprintf("%s-%d", section, i),
				Title:       fmt.Sprintf("%s story %d from %s", section, i, places[k%4]),
				Section:     section,
				ImpactScore: float64(100 - i),
			})
			k++
		}
	}
	geoBuckets := count(pool, func(a domain.Article) string { return geo.New().Locate(a.Title).Bucket() })
	assert.Equal(t, map[string]int{"city:chennai": 5, "city:mumbai": 5, "region:kerala": 5, "country:japan": 5}, geoBuckets)

	res := New(geo.New()).Compose(pool, Params{Limit: 20, MaxTopicPercent: 40, MaxGeoPercent: 30})
	require.Len(t, res, 16)
	bySection := count(res, func(a domain.Article) string { return a.Section })
	assert.Equal(t, 8, bySection["politics"])
	assert.Equal(t, 8, bySection["sports"])
}

func TestComposer_GeoCap(t *testing.T) {
	topics := []string{"politics", "sports", "business", "technology", "health"}
	var pool []domain.Article
	for i := 0; i < 10; i++ {
		pool = append(pool,
			domain.Article{ID: fmt.Sprintf("c%d", i), Title: fmt.Sprintf("Chennai update %d", i), Section: topics[i%5], ImpactScore: float64(50 - i)},
			domain.Article{ID: fmt.Sprintf("g%d", i), Title: fmt.Sprintf("Markets update %d", i), Section: topics[(i+1)%5], ImpactScore: float64(50 - i)},
		)
	}

	res := New(geo.New()).Compose(pool, Params{Limit: 20, MaxTopicPercent: 40, MaxGeoPercent: 30})
	require.Len(t, res, 12)
	byGeo := count(res, func(a domain.Article) string { return geo.New().Locate(a.Title).Bucket() })
	assert.Equal(t, 6, byGeo["city:chennai"])
	assert.Equal(t, 6, byGeo["global"])
}

func TestComposer_OrderAndLimit(t *testing.T) {
	pool := []domain.Article{
		{ID: "low", Title: "a", Section: "x1", ImpactScore: 1},
		{ID: "high", Title: "b", Section: "x2", ImpactScore: 9},
		{ID: "mid1", Title: "c", Section: "x3", ImpactScore: 5},
		{ID: "mid2", Title: "d", Section: "x4", ImpactScore: 5},
	}
	res := New(geo.New()).Compose(pool, Params{Limit: 3, MaxTopicPercent: 100, MaxGeoPercent: 100})
	require.Len(t, res, 3)
	assert.Equal(t, []string{"high", "mid1", "mid2"}, []string{res[0].ID, res[1].ID, res[2].ID}, "stable by score")
	assert.Equal(t, "low", pool[0].ID, "pool is not reordered")
}

func TestComposer_SkippedNotRetried(t *testing.T) {
	// limit 5, topic cap 2: third politics article is skipped even though slots remain
	pool := []domain.Article{
		{ID: "p1", Section: "politics", ImpactScore: 10},
		{ID: "p2", Section: "politics", ImpactScore: 9},
		{ID: "p3", Section: "politics", ImpactScore: 8},
		{ID: "s1", Section: "sports", ImpactScore: 7},
	}
	res := New(geo.New()).Compose(pool, Params{Limit: 5, MaxTopicPercent: 40, MaxGeoPercent: 100})
	require.Len(t, res, 3)
	assert.Equal(t, "s1", res[2].ID)
}

func TestComposer_Empty(t *testing.T) {
	c := New(geo.New())
	assert.Empty(t, c.Compose(nil, Params{Limit: 20, MaxTopicPercent: 40, MaxGeoPercent: 30}))
	assert.Empty(t, c.Compose([]domain.Article{{ID: "a"}}, Params{Limit: 0, MaxTopicPercent: 40, MaxGeoPercent: 30}))
}
