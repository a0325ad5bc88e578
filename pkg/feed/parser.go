package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/newsdesk/pkg/domain"
)

// parseFeed parses RSS/Atom payload into a raw feed
func parseFeed(data []byte) (*domain.RawFeed, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.RawFeed{
		Title: strings.TrimSpace(feed.Title),
		Items: make([]domain.RawItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		raw := domain.RawItem{
			GUID:         item.GUID,
			Title:        item.Title,
			Link:         item.Link,
			Description:  item.Description,
			Content:      item.Content,
			Enclosure:    imageEnclosure(item.Enclosures),
			Thumbnail:    mediaURL(item.Extensions, "thumbnail"),
			MediaContent: mediaURL(item.Extensions, "content"),
		}

		// keep the original string, dates are parsed by the normalizer
		raw.Published = item.Published
		if raw.Published == "" {
			raw.Published = item.Updated
		}

		if item.Author != nil {
			raw.Author = item.Author.Name
		} else if len(item.Authors) > 0 && item.Authors[0] != nil {
			raw.Author = item.Authors[0].Name
		}

		if raw.Thumbnail == "" && item.Image != nil {
			raw.Thumbnail = item.Image.URL
		}

		result.Items = append(result.Items, raw)
	}

	return result, nil
}

// imageEnclosure returns the first enclosure that looks like an image
func imageEnclosure(enclosures []*gofeed.Enclosure) string {
	for _, e := range enclosures {
		if e == nil || e.URL == "" {
			continue
		}
		if strings.HasPrefix(e.Type, "image/") || (e.Type == "" && looksLikeImage(e.URL)) {
			return e.URL
		}
	}
	return ""
}

// mediaURL returns url attribute of media:<name>, looking into media:group as well
func mediaURL(extensions ext.Extensions, name string) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}
	for _, e := range media[name] {
		if u := e.Attrs["url"]; u != "" {
			return u
		}
	}
	for _, group := range media["group"] {
		for _, e := range group.Children[name] {
			if u := e.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return ""
}

func looksLikeImage(u string) bool {
	lower := strings.ToLower(u)
	if idx := strings.IndexAny(lower, "?#"); idx >= 0 {
		lower = lower[:idx]
	}
	for _, suffix := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
