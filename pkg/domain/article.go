package domain

import "time"

// Article is one normalized news item, mutated by scoring and deduplication during a refresh cycle
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Summary       string     `json:"summary"`
	Link          string     `json:"link"`
	Source        string     `json:"source"`
	Published     time.Time  `json:"published"`
	Fetched       time.Time  `json:"fetched"`
	DateParsed    bool       `json:"-"` // false if Published was defaulted to fetch time
	Section       string     `json:"section"`
	ImageURL      string     `json:"image_url,omitempty"`
	Sentiment     *Sentiment `json:"sentiment,omitempty"`
	ImpactScore   float64    `json:"impact_score"`
	IsBreaking    bool       `json:"is_breaking"`
	BreakingScore float64    `json:"breaking_score"`
	SourceCount   int        `json:"source_count"`
	ClusterSize   int        `json:"cluster_size"`
}

// Text returns title and summary joined, the input for all keyword heuristics
func (a *Article) Text() string {
	if a.Summary == "" {
		return a.Title
	}
	return a.Title + " " + a.Summary
}

// Age returns how long ago the article was published relative to now
func (a *Article) Age(now time.Time) time.Duration {
	age := now.Sub(a.Published)
	if age < 0 {
		return 0
	}
	return age
}

// SentimentLabel is a polarity bucket
type SentimentLabel string

// sentiment labels
const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment holds polarity of an article, Score is the blended comparative value
type Sentiment struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}
