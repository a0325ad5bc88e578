package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/domain"
)

// Strategy is one way of retrieving and parsing a remote feed
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error)
}

// DirectStrategy requests the feed from its origin
type DirectStrategy struct {
	name   string
	client *HTTPClient
}

// NewDirectStrategy makes a direct strategy
func NewDirectStrategy(name string, client *HTTPClient) *DirectStrategy {
	return &DirectStrategy{name: name, client: client}
}

// Name returns the endpoint name
func (s *DirectStrategy) Name() string { return s.name }

// Fetch gets and parses the feed
func (s *DirectStrategy) Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error) {
	body, err := s.client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

// RawProxyStrategy requests the feed through a pass-through proxy, the template has one %s for the escaped feed url
type RawProxyStrategy struct {
	name     string
	template string
	client   *HTTPClient
}

// NewRawProxyStrategy makes a raw proxy strategy
func NewRawProxyStrategy(name, template string, client *HTTPClient) *RawProxyStrategy {
	return &RawProxyStrategy{name: name, template: template, client: client}
}

// Name returns the endpoint name
func (s *RawProxyStrategy) Name() string { return s.name }

// Fetch gets the feed through the proxy and parses it
func (s *RawProxyStrategy) Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error) {
	body, err := s.client.Get(ctx, proxyURL(s.template, feedURL))
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

// JSONProxyStrategy requests the feed through an rss-to-json converter
type JSONProxyStrategy struct {
	name     string
	template string
	client   *HTTPClient
}

// NewJSONProxyStrategy makes a json proxy strategy
func NewJSONProxyStrategy(name, template string, client *HTTPClient) *JSONProxyStrategy {
	return &JSONProxyStrategy{name: name, template: template, client: client}
}

// Name returns the endpoint name
func (s *JSONProxyStrategy) Name() string { return s.name }

type jsonFeed struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Feed    struct {
		Title string `json:"title"`
	} `json:"feed"`
	Items []struct {
		Title       string `json:"title"`
		PubDate     string `json:"pubDate"`
		Link        string `json:"link"`
		GUID        string `json:"guid"`
		Author      string `json:"author"`
		Thumbnail   string `json:"thumbnail"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Enclosure   struct {
			Link string `json:"link"`
			Type string `json:"type"`
		} `json:"enclosure"`
	} `json:"items"`
}

// Fetch gets the converted feed and maps it to a raw feed
func (s *JSONProxyStrategy) Fetch(ctx context.Context, feedURL string) (*domain.RawFeed, error) {
	body, err := s.client.Get(ctx, proxyURL(s.template, feedURL))
	if err != nil {
		return nil, err
	}

	var jf jsonFeed
	if err := json.Unmarshal(body, &jf); err != nil {
		return nil, fmt.Errorf("parse json feed: %w", err)
	}
	if jf.Status != "" && jf.Status != "ok" {
		return nil, fmt.Errorf("json feed status %q: %s", jf.Status, jf.Message)
	}

	res := &domain.RawFeed{Title: strings.TrimSpace(jf.Feed.Title), Items: make([]domain.RawItem, 0, len(jf.Items))}
	for _, it := range jf.Items {
		item := domain.RawItem{
			GUID:        it.GUID,
			Title:       it.Title,
			Link:        it.Link,
			Published:   it.PubDate,
			Description: it.Description,
			Content:     it.Content,
			Author:      it.Author,
			Thumbnail:   it.Thumbnail,
		}
		if strings.HasPrefix(it.Enclosure.Type, "image/") || (it.Enclosure.Type == "" && looksLikeImage(it.Enclosure.Link)) {
			item.Enclosure = it.Enclosure.Link
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func proxyURL(template, feedURL string) string {
	return fmt.Sprintf(template, url.QueryEscape(feedURL))
}

// NewStrategies makes endpoint strategies in configured order
func NewStrategies(cfg config.FetchConfig) ([]Strategy, error) {
	client := NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	res := make([]Strategy, 0, len(cfg.Endpoints))
	for i, ep := range cfg.Endpoints {
		name := ep.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", ep.Type, i)
		}
		switch ep.Type {
		case config.EndpointDirect:
			res = append(res, NewDirectStrategy(name, client))
		case config.EndpointRaw:
			res = append(res, NewRawProxyStrategy(name, ep.Template, client))
		case config.EndpointJSON:
			res = append(res, NewJSONProxyStrategy(name, ep.Template, client))
		default:
			return nil, fmt.Errorf("unknown endpoint type %q for %s", ep.Type, name)
		}
	}
	return res, nil
}
