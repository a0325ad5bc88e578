// Package normalize turns raw feed items into articles
package normalize

import (
	"crypto/sha256"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsdesk/pkg/domain"
)

// Classifier re-derives a section from article text, false means keep the feed section
type Classifier interface {
	Classify(text string) (string, bool)
}

// SentimentAnalyzer returns sentiment for relevant articles, nil otherwise
type SentimentAnalyzer interface {
	ForArticle(section, title, description string) *domain.Sentiment
}

// Normalizer maps raw items to articles
type Normalizer struct {
	classifier Classifier
	sentiment  SentimentAnalyzer
	policy     *bluemonday.Policy
	now        func() time.Time
}

// New makes a normalizer. Classifier and sentiment analyzer are optional.
func New(classifier Classifier, sentiment SentimentAnalyzer) *Normalizer {
	return &Normalizer{
		classifier: classifier,
		sentiment:  sentiment,
		policy:     bluemonday.StrictPolicy(),
		now:        time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize maps one raw item of a feed declared for section into an article
func (n *Normalizer) Normalize(item domain.RawItem, section, feedTitle string) domain.Article {
	now := n.now()

	rawDesc := item.Description
	if strings.TrimSpace(rawDesc) == "" {
		rawDesc = item.Content
	}

	art := domain.Article{
		ID:          ID(item.Link, item.GUID, item.Title),
		Title:       n.cleanText(item.Title),
		Summary:     n.cleanText(rawDesc),
		Link:        strings.TrimSpace(item.Link),
		Source:      CleanSource(feedTitle, item.Link),
		Fetched:     now,
		Section:     section,
		SourceCount: 1,
		ClusterSize: 1,
	}
	art.Published, art.DateParsed = parseDate(item.Published, now)

	if img, ok := extractImage(item, rawDesc); ok {
		art.ImageURL = img
	}

	if n.classifier != nil {
		if s, ok := n.classifier.Classify(art.Text()); ok {
			art.Section = s
		}
	}

	if n.sentiment != nil {
		art.Sentiment = n.sentiment.ForArticle(art.Section, art.Title, art.Summary)
	}
	return art
}

// NormalizeFeed maps all items of a raw feed, skipping items without title and link
func (n *Normalizer) NormalizeFeed(feed *domain.RawFeed, section string) []domain.Article {
	if feed == nil {
		return nil
	}
	res := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if strings.TrimSpace(item.Title) == "" && strings.TrimSpace(item.Link) == "" {
			continue
		}
		res = append(res, n.Normalize(item, section, feed.Title))
	}
	return res
}

// ID returns a stable article identifier from link, falling back to guid and then title
func ID(link, guid, title string) string {
	key := strings.TrimSpace(link)
	if key == "" {
		key = strings.TrimSpace(guid)
	}
	if key == "" {
		key = strings.TrimSpace(title)
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))[:16]
}

// cleanText strips markup, decodes entities and collapses whitespace
func (n *Normalizer) cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(n.policy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// parseDate parses a free-form date, defaults to now with false if it can't
func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil || t.IsZero() {
		return now, false
	}
	return t, true
}

// extractImage tries enclosure, thumbnail, media content and the first img in the description
func extractImage(item domain.RawItem, rawDesc string) (string, bool) {
	for _, candidate := range []string{item.Enclosure, item.Thumbnail, item.MediaContent} {
		if u, ok := absoluteHTTP(candidate); ok {
			return u, true
		}
	}
	return absoluteHTTP(firstImage(rawDesc))
}

// firstImage returns src of the first img element in an html fragment
func firstImage(fragment string) string {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

func absoluteHTTP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return s, true
}
