package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	published := time.Now().Add(-20 * time.Minute).UTC().Format(time.RFC1123Z)
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Reuters</title>
<item><title>Harbour expansion approved by council</title><link>https://example.com/1</link><pubDate>%s</pubDate></item>
<item><title>New telescope spots distant comet</title><link>https://example.com/2</link><pubDate>%s</pubDate></item>
</channel></rss>`, published, published)
	}))
	defer feedSrv.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "newsdesk.yml")
	cfgContent := fmt.Sprintf(`
server:
  listen: "127.0.0.1:%d"
  timeout: 5s
database:
  dsn: "file:%s?mode=rwc&_txlock=immediate"
fetch:
  timeout: 2s
  endpoints:
    - name: direct
      type: direct
  refresh_interval: 0s
sections:
  world:
    - %s/rss
`, port, filepath.Join(dir, "test.db"), feedSrv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: cfgPath}) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/sections/world")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var section struct {
		Count    int `json:"count"`
		Articles []struct {
			Title  string `json:"title"`
			Source string `json:"source"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(body, &section), string(body))
	assert.Equal(t, 2, section.Count)
	assert.Equal(t, "Reuters", section.Articles[0].Source)

	feedsResp, err := http.Get(base + "/api/v1/feeds?section=world")
	require.NoError(t, err)
	defer feedsResp.Body.Close()
	var feeds struct {
		Feeds []struct {
			Endpoint  string `json:"endpoint"`
			ItemCount int    `json:"item_count"`
		} `json:"feeds"`
	}
	require.NoError(t, json.NewDecoder(feedsResp.Body).Decode(&feeds))
	require.Len(t, feeds.Feeds, 1)
	assert.Equal(t, "direct", feeds.Feeds[0].Endpoint)
	assert.Equal(t, 2, feeds.Feeds[0].ItemCount)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "secret2")
	})
}
