package feed

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/config"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>article-1</guid>
		<enclosure url="http://example.com/a1.jpg" length="100" type="image/jpeg"/>
		<media:thumbnail url="http://example.com/a1-thumb.jpg"/>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
		<enclosure url="http://example.com/a2.mp3" length="100" type="audio/mpeg"/>
		<media:content url="http://example.com/a2-media.jpg" medium="image"/>
	</item>
</channel>
</rss>`

const testAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>entry1</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
		<author><name>Jane</name></author>
	</entry>
</feed>`

func TestDirectStrategy_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	s := NewDirectStrategy("direct", NewHTTPClient(5*time.Second, "test-agent"))
	assert.Equal(t, "direct", s.Name())

	feed, err := s.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Test Feed", feed.Title)
	require.Len(t, feed.Items, 2)

	item1 := feed.Items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "http://example.com/article1", item1.Link)
	assert.Equal(t, "Article 1 description", item1.Description)
	assert.Equal(t, "<p>Full content of article 1</p>", item1.Content)
	assert.Equal(t, "article-1", item1.GUID)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0700", item1.Published)
	assert.Equal(t, "http://example.com/a1.jpg", item1.Enclosure)
	assert.Equal(t, "http://example.com/a1-thumb.jpg", item1.Thumbnail)

	item2 := feed.Items[1]
	assert.Empty(t, item2.Enclosure, "audio enclosure is not an image")
	assert.Equal(t, "http://example.com/a2-media.jpg", item2.MediaContent)
}

func TestDirectStrategy_Atom(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testAtom))
	}))
	defer ts.Close()

	feed, err := NewDirectStrategy("direct", NewHTTPClient(5*time.Second, "")).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Test Atom Feed", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Atom Entry 1", feed.Items[0].Title)
	assert.Equal(t, "http://example.com/entry1", feed.Items[0].Link)
	assert.Equal(t, "2006-01-02T15:04:05Z", feed.Items[0].Published)
	assert.Equal(t, "Jane", feed.Items[0].Author)
}

func TestDirectStrategy_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()
		_, err := NewDirectStrategy("direct", NewHTTPClient(5*time.Second, "")).Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 403")
	})

	t.Run("not a feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>blocked</body></html>"))
		}))
		defer ts.Close()
		_, err := NewDirectStrategy("direct", NewHTTPClient(5*time.Second, "")).Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})
}

func TestDirectStrategy_CompressedBodies(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(testRSS))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, err = bw.Write([]byte(testRSS))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gz.Bytes()},
		{name: "brotli", encoding: "br", body: br.Bytes()},
		{name: "identity", encoding: "", body: []byte(testRSS)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(tt.body)
			}))
			defer ts.Close()

			feed, err := NewDirectStrategy("direct", NewHTTPClient(5*time.Second, "")).Fetch(context.Background(), ts.URL)
			require.NoError(t, err)
			assert.Len(t, feed.Items, 2)
		})
	}
}

func TestRawProxyStrategy_Fetch(t *testing.T) {
	feedURL := "https://news.example.com/rss?section=world&lang=en"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raw", r.URL.Path)
		assert.Equal(t, feedURL, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	s := NewRawProxyStrategy("proxy", ts.URL+"/raw?url=%s", NewHTTPClient(5*time.Second, ""))
	feed, err := s.Fetch(context.Background(), feedURL)
	require.NoError(t, err)
	assert.Equal(t, "Test Feed", feed.Title)
	assert.Len(t, feed.Items, 2)
}

func TestJSONProxyStrategy_Fetch(t *testing.T) {
	feedURL := "https://news.example.com/rss"

	t.Run("ok", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, feedURL, r.URL.Query().Get("rss_url"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","feed":{"title":"Json Feed"},"items":[
				{"title":"J1","pubDate":"2025-06-10 08:00:00","link":"https://news.example.com/j1","guid":"g1",
				 "author":"Bob","thumbnail":"https://img.example.com/t.jpg","description":"<p>d1</p>","content":"c1",
				 "enclosure":{"link":"https://img.example.com/e.png","type":"image/png"}},
				{"title":"J2","link":"https://news.example.com/j2","enclosure":{"link":"https://x/e.mp4","type":"video/mp4"}}]}`))
		}))
		defer ts.Close()

		s := NewJSONProxyStrategy("json", ts.URL+"/api.json?rss_url=%s", NewHTTPClient(5*time.Second, ""))
		feed, err := s.Fetch(context.Background(), feedURL)
		require.NoError(t, err)
		assert.Equal(t, "Json Feed", feed.Title)
		require.Len(t, feed.Items, 2)
		assert.Equal(t, "J1", feed.Items[0].Title)
		assert.Equal(t, "2025-06-10 08:00:00", feed.Items[0].Published)
		assert.Equal(t, "Bob", feed.Items[0].Author)
		assert.Equal(t, "https://img.example.com/t.jpg", feed.Items[0].Thumbnail)
		assert.Equal(t, "https://img.example.com/e.png", feed.Items[0].Enclosure)
		assert.Empty(t, feed.Items[1].Enclosure)
	})

	t.Run("error status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"error","message":"Cannot download this RSS feed"}`))
		}))
		defer ts.Close()

		s := NewJSONProxyStrategy("json", ts.URL+"/?u=%s", NewHTTPClient(5*time.Second, ""))
		_, err := s.Fetch(context.Background(), feedURL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot download this RSS feed")
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<rss>`))
		}))
		defer ts.Close()

		s := NewJSONProxyStrategy("json", ts.URL+"/?u=%s", NewHTTPClient(5*time.Second, ""))
		_, err := s.Fetch(context.Background(), feedURL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse json feed")
	})
}

func TestNewStrategies(t *testing.T) {
	strategies, err := NewStrategies(config.Default().Fetch)
	require.NoError(t, err)
	require.Len(t, strategies, 3)
	assert.IsType(t, &DirectStrategy{}, strategies[0])
	assert.IsType(t, &RawProxyStrategy{}, strategies[1])
	assert.IsType(t, &JSONProxyStrategy{}, strategies[2])
	assert.Equal(t, "allorigins", strategies[1].Name())

	_, err = NewStrategies(config.FetchConfig{Endpoints: []config.EndpointConfig{{Type: "carrier-pigeon"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon-0")
}

func TestFetcher_WithHTTPStrategies(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer direct.Close()
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	}))
	defer proxy.Close()

	client := NewHTTPClient(5*time.Second, "")
	f := NewFetcher(2*time.Second, NewDirectStrategy("direct", client), NewRawProxyStrategy("proxy", proxy.URL+"/?url=%s", client))

	feed, err := f.Fetch(context.Background(), direct.URL)
	require.NoError(t, err)
	assert.Equal(t, "proxy", feed.Endpoint)
	assert.Len(t, feed.Items, 2)
}
