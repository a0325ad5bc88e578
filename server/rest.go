package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/newsdesk/pkg/aggregator"
	"github.com/umputun/newsdesk/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":   "ok",
		"version":  s.version,
		"sections": len(s.services.Aggregator.Sections()),
		"time":     time.Now().UTC(),
	})
}

// sectionsHandler lists configured sections
func (s *Server) sectionsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{"sections": s.services.Aggregator.Sections()})
}

// sectionHandler returns the ranked articles of a section
func (s *Server) sectionHandler(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	articles, err := s.services.Aggregator.Section(r.Context(), section)
	if err != nil {
		s.renderAggregatorError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"section": section, "count": len(articles), "articles": articles})
}

// frontPageHandler returns the diversity capped front page, limit query parameter is optional
func (s *Server) frontPageHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	articles, err := s.services.Aggregator.FrontPage(r.Context(), limit)
	if err != nil {
		s.renderAggregatorError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"count": len(articles), "articles": articles})
}

// breakingHandler lists tracked stories corroborated by at least min_sources publishers
func (s *Server) breakingHandler(w http.ResponseWriter, r *http.Request) {
	minSources, err := intParam(r, "min_sources", 2)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	stories := s.services.Stories.Stories(minSources)
	renderJSON(w, r, http.StatusOK, rest.JSON{"count": len(stories), "stories": stories})
}

// cacheHandler reports section cache state
func (s *Server) cacheHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.services.Cache.Stats())
}

// endpointsHandler reports fetch endpoint rotation state
func (s *Server) endpointsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{"endpoints": s.services.Endpoints.Stats()})
}

// feedsHandler returns the feed health log, optionally for one section or only feeds with failing=N errors in a row
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	minErrors, err := intParam(r, "failing", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	var statuses []domain.FeedStatus
	if minErrors > 0 {
		statuses, err = s.services.FeedStatus.Failing(r.Context(), minErrors)
	} else {
		statuses, err = s.services.FeedStatus.List(r.Context(), r.URL.Query().Get("section"))
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to list feed status: %v", err)
		renderError(w, r, errors.New("failed to list feed status"), http.StatusInternalServerError)
		return
	}
	if statuses == nil {
		statuses = []domain.FeedStatus{}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"feeds": statuses})
}

// renderAggregatorError maps aggregator errors to status codes
func (s *Server) renderAggregatorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, aggregator.ErrUnknownSection):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, aggregator.ErrNoData):
		renderError(w, r, aggregator.ErrNoData, http.StatusServiceUnavailable)
	default:
		lgr.Printf("[ERROR] request %s failed: %v", r.URL.Path, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// intParam parses an optional non-negative integer query parameter
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	res, err := strconv.Atoi(v)
	if err != nil || res < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return res, nil
}
