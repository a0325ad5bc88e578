package breaking

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/domain"
)

var t0 = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func article(id, title, source string, published time.Time) domain.Article {
	return domain.Article{ID: id, Title: title, Source: source, Published: published}
}

func TestDetector_BreakingPromotion(t *testing.T) {
	d := New(DefaultConfig())

	a := article("a", "Massive earthquake strikes northern Japan coast", "Reuters", t0)
	res := d.Observe(a, t0)
	assert.False(t, res.Breaking, "single source is not breaking")

	b := article("b", "Massive earthquake strikes northern Japan coast today", "BBC News", t0.Add(5*time.Minute))
	res = d.Observe(b, t0.Add(10*time.Minute))
	assert.True(t, res.Breaking)
	assert.InDelta(t, math.Log(60.0/5.0), res.Score, 0.0001)
	assert.True(t, d.Flagged("b"))

	c := article("c", "Massive earthquake strikes northern Japan coast!", "NDTV", t0.Add(15*time.Minute))
	res = d.Observe(c, t0.Add(20*time.Minute))
	assert.True(t, res.Breaking, "later similar article within window is breaking")

	old := article("old", "Massive earthquake strikes northern Japan coast", "AP", t0.Add(20*time.Minute-90*time.Minute))
	res = d.Observe(old, t0.Add(20*time.Minute))
	assert.False(t, res.Breaking, "article 90 minutes old is not breaking")
	assert.Zero(t, res.Score)

	stories := d.Stories(2)
	require.Len(t, stories, 1)
	assert.Equal(t, 4, stories[0].Corroboration)
	assert.Equal(t, []string{"AP", "BBC News", "NDTV", "Reuters"}, stories[0].Sources)
	assert.Equal(t, "massive earthquake strikes northern japan coast", stories[0].Key)
}

func TestDetector_SameSourceDoesNotCorroborate(t *testing.T) {
	d := New(DefaultConfig())
	d.Observe(article("a", "Parliament passes new data protection bill", "PTI", t0), t0)
	res := d.Observe(article("a2", "Parliament passes new data protection bill", "PTI", t0), t0.Add(time.Minute))
	assert.False(t, res.Breaking)
	require.Len(t, d.Stories(1), 1)
	assert.Equal(t, 1, d.Stories(1)[0].Corroboration)
}

func TestDetector_StoryOutsideWindow(t *testing.T) {
	d := New(DefaultConfig())
	d.Observe(article("a", "Cyclone makes landfall near Chennai", "The Hindu", t0), t0)

	// matched story is older than the window, the new source is not recorded
	late := t0.Add(70 * time.Minute)
	res := d.Observe(article("b", "Cyclone makes landfall near Chennai", "DT Next", late), late)
	assert.False(t, res.Breaking)
	assert.Empty(t, d.Stories(2))
	assert.Equal(t, 1, d.Len(), "matched article does not seed a new story")
}

func TestDetector_DissimilarTitlesSeedStories(t *testing.T) {
	d := New(DefaultConfig())
	d.Observe(article("a", "Cyclone makes landfall near Chennai", "The Hindu", t0), t0)
	res := d.Observe(article("b", "Sensex closes higher on bank rally", "Mint", t0), t0)
	assert.False(t, res.Breaking)
	assert.Equal(t, 2, d.Len())

	res = d.Observe(article("c", "!!!", "Mint", t0), t0)
	assert.False(t, res.Breaking)
	assert.Equal(t, 2, d.Len(), "empty normalized title is ignored")
}

func TestDetector_Prune(t *testing.T) {
	d := New(DefaultConfig())
	d.Observe(article("a", "Storm hits the city overnight", "S1", t0), t0)
	d.Observe(article("b", "Storm hits the city overnight", "S2", t0), t0.Add(time.Minute))
	require.True(t, d.Flagged("b"))

	assert.Equal(t, 0, d.Prune(t0.Add(119*time.Minute)))
	assert.Equal(t, 1, d.Len())

	assert.Equal(t, 1, d.Prune(t0.Add(121*time.Minute)))
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Flagged("b"), "flags removed with their story")
}

func TestDetector_OpportunisticPrune(t *testing.T) {
	d := New(DefaultConfig())
	d.Observe(article("a", "Storm hits the city overnight", "S1", t0), t0)
	d.Observe(article("b", "Election results announced in the state", "S1", t0), t0.Add(130*time.Minute))
	assert.Equal(t, 1, d.Len(), "old story pruned during observation")
}

func TestDetector_ConfigDefaults(t *testing.T) {
	d := New(Config{})
	assert.Equal(t, DefaultConfig(), d.cfg)
}

func TestDetector_Concurrent(t *testing.T) {
	d := New(DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf("src-%d", i)
			d.Observe(article(src, "Rocket launch succeeds from Sriharikota", src, t0), t0.Add(time.Minute))
		}(i)
	}
	wg.Wait()

	stories := d.Stories(2)
	require.Len(t, stories, 1)
	assert.Equal(t, 50, stories[0].Corroboration)
}

func TestScore(t *testing.T) {
	window := 60 * time.Minute
	assert.InDelta(t, 3.0, Score(0, window), 0.0001, "capped at 3")
	assert.InDelta(t, 3.0, Score(30*time.Second, window), 0.0001)
	assert.InDelta(t, math.Log(2), Score(30*time.Minute, window), 0.0001)
	assert.Greater(t, Score(10*time.Minute, window), Score(20*time.Minute, window))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "breaking quake hits japan", NormalizeTitle("  BREAKING: Quake hits   Japan! "))
	assert.Equal(t, "", NormalizeTitle("?!"))
}

func TestSimilarity(t *testing.T) {
	a := tokenSet("a b c d")
	b := tokenSet("a b c e")
	assert.InDelta(t, 3.0/5.0, Similarity(a, b), 0.0001)
	assert.InDelta(t, 1.0, Similarity(a, a), 0.0001)
	assert.Zero(t, Similarity(tokenSet(""), tokenSet("")))
}
