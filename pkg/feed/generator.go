package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/umputun/newsdesk/pkg/domain"
)

// Generator renders ranked articles as RSS
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 feed of a ranked section
func (g *Generator) GenerateRSS(section string, articles []domain.Article) (string, error) {
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Newsdesk - %s", section),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss/%s", g.baseURL, section)},
		Description: fmt.Sprintf("Top ranked %s news", section),
		Created:     g.now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(articles))
	for _, a := range articles {
		feed.Items = append(feed.Items, g.item(a))
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("generate rss for %s: %w", section, err)
	}
	return rss, nil
}

func (g *Generator) item(a domain.Article) *feeds.Item {
	title := a.Title
	if a.IsBreaking {
		title = "BREAKING: " + title
	}

	desc := a.Summary
	if a.SourceCount > 1 {
		desc = fmt.Sprintf("%s (reported by %d sources)", desc, a.SourceCount)
	}

	return &feeds.Item{
		Title:       title,
		Link:        &feeds.Link{Href: a.Link},
		Description: strings.TrimSpace(desc),
		Author:      &feeds.Author{Name: a.Source},
		Id:          a.ID,
		Created:     a.Published,
	}
}
