package server

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/aggregator"
)

// rssHandler serves the ranked section as RSS 2.0
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")

	articles, err := s.services.Aggregator.Section(r.Context(), section)
	switch {
	case errors.Is(err, aggregator.ErrUnknownSection):
		http.Error(w, "Unknown section", http.StatusNotFound)
		return
	case errors.Is(err, aggregator.ErrNoData):
		http.Error(w, aggregator.ErrNoData.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		lgr.Printf("[ERROR] failed to get section %s for RSS: %v", section, err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.GenerateRSS(section, articles)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
