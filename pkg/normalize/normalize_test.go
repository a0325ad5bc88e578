package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/classify"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/sentiment"
)

func TestNormalizer_Normalize(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	n := New(classify.New(), sentiment.New()).WithClock(func() time.Time { return now })

	item := domain.RawItem{
		GUID:        "guid-1",
		Title:       "Sensex &amp; Nifty rally as investors cheer earnings",
		Link:        "https://example.com/markets/1",
		Published:   "Tue, 10 Jun 2025 10:30:00 +0000",
		Description: `<p>Stocks <b>gain</b> on strong results</p><img src="https://img.example.com/a.jpg"/>`,
	}

	art := n.Normalize(item, domain.SectionIndia, "Moneycontrol Latest News")
	assert.Equal(t, ID(item.Link, "", ""), art.ID)
	assert.Equal(t, "Sensex & Nifty rally as investors cheer earnings", art.Title)
	assert.Equal(t, "Stocks gain on strong results", art.Summary)
	assert.Equal(t, "Moneycontrol", art.Source)
	assert.Equal(t, domain.SectionBusiness, art.Section, "keywords override feed section")
	assert.True(t, art.DateParsed)
	assert.True(t, art.Published.Equal(time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, now, art.Fetched)
	assert.Equal(t, "https://img.example.com/a.jpg", art.ImageURL)
	require.NotNil(t, art.Sentiment)
	assert.Equal(t, domain.SentimentPositive, art.Sentiment.Label)
	assert.Equal(t, 1, art.SourceCount)
	assert.Equal(t, 1, art.ClusterSize)
}

func TestNormalizer_NormalizeDefaults(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	n := New(classify.New(), sentiment.New()).WithClock(func() time.Time { return now })

	art := n.Normalize(domain.RawItem{Title: "Quiet day in the village", Published: "not a date at all"},
		domain.SectionLocal, "")
	assert.Equal(t, now, art.Published)
	assert.False(t, art.DateParsed)
	assert.Equal(t, domain.SectionLocal, art.Section, "inconclusive classification keeps feed section")
	assert.Nil(t, art.Sentiment)
	assert.Empty(t, art.ImageURL)
	assert.Equal(t, "Unknown", art.Source)
}

func TestNormalizer_ContentFallback(t *testing.T) {
	n := New(nil, nil)
	art := n.Normalize(domain.RawItem{Title: "t", Link: "https://www.thehindu.com/x", Content: "<div>body text</div>"}, "world", "")
	assert.Equal(t, "body text", art.Summary)
	assert.Equal(t, "The Hindu", art.Source)
	assert.Equal(t, "world", art.Section)
}

func TestNormalizer_NormalizeFeed(t *testing.T) {
	n := New(nil, nil)
	assert.Nil(t, n.NormalizeFeed(nil, "world"))

	feed := &domain.RawFeed{Title: "BBC News - World", Items: []domain.RawItem{
		{Title: "one", Link: "https://bbc.co.uk/1"},
		{Title: " ", Link: ""},
		{Title: "two", Link: "https://bbc.co.uk/2"},
	}}
	arts := n.NormalizeFeed(feed, "world")
	require.Len(t, arts, 2)
	assert.Equal(t, "one", arts[0].Title)
	assert.Equal(t, "BBC News", arts[1].Source)
}

func TestID(t *testing.T) {
	a := ID("https://example.com/a", "g1", "Title")
	assert.Len(t, a, 16)
	assert.Equal(t, a, ID("https://example.com/a", "g2", "Other"), "link decides when present")
	assert.Equal(t, ID("", "g1", "x"), ID("", "g1", "y"), "guid is the first fallback")
	assert.Equal(t, ID("", "", "Title"), ID("", "", " Title "), "title is the last fallback")
	assert.NotEqual(t, ID("https://example.com/a", "", ""), ID("https://example.com/b", "", ""))

	// repeated normalization of the same item gives the same id
	n := New(classify.New(), sentiment.New())
	item := domain.RawItem{Title: "Same story", Link: "https://example.com/story"}
	assert.Equal(t, n.Normalize(item, "world", "x").ID, n.Normalize(item, "world", "x").ID)
}

func TestExtractImage(t *testing.T) {
	tests := []struct {
		name string
		item domain.RawItem
		want string
		ok   bool
	}{
		{
			name: "enclosure first",
			item: domain.RawItem{Enclosure: "https://a/enc.jpg", Thumbnail: "https://a/th.jpg", MediaContent: "https://a/mc.jpg"},
			want: "https://a/enc.jpg", ok: true,
		},
		{
			name: "thumbnail before media content",
			item: domain.RawItem{Thumbnail: "https://a/th.jpg", MediaContent: "https://a/mc.jpg"},
			want: "https://a/th.jpg", ok: true,
		},
		{
			name: "relative enclosure skipped",
			item: domain.RawItem{Enclosure: "/img/enc.jpg", MediaContent: "http://a/mc.jpg"},
			want: "http://a/mc.jpg", ok: true,
		},
		{
			name: "img in description",
			item: domain.RawItem{Description: `<p>text</p><IMG src="https://a/inline.png">`},
			want: "https://a/inline.png", ok: true,
		},
		{
			name: "non http img discarded",
			item: domain.RawItem{Description: `<img src="data:image/png;base64,xyz">`},
			ok:   false,
		},
		{
			name: "nothing",
			item: domain.RawItem{Description: "plain"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractImage(tt.item, tt.item.Description)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	got, ok := parseDate("2025-06-10T08:00:00Z", now)
	assert.True(t, ok)
	assert.True(t, got.Equal(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)))

	got, ok = parseDate("", now)
	assert.False(t, ok)
	assert.Equal(t, now, got)
}
