// Package scoring computes impact scores of articles. Full mode multiplies the base score by
// independent factor multipliers, legacy mode uses the base score only. Full mode failures fall
// back to legacy scoring for the article.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/breaking"
	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/geo"
)

//go:generate moq -out mocks/detector.go -pkg mocks -skip-ensure -fmt goimports . BreakingDetector

// BreakingDetector reports whether an article is breaking, called once per scored article
type BreakingDetector interface {
	Observe(a domain.Article, now time.Time) breaking.Result
}

// Params defines engine dependencies. Only Settings is required.
type Params struct {
	Settings  *config.Settings
	Detector  BreakingDetector
	Corpus    *NoveltyCorpus
	Gazetteer *geo.Gazetteer
	Profiles  map[string]SourceProfile
	Now       func() time.Time
}

// Engine scores articles
type Engine struct {
	settings   *config.Settings
	detector   BreakingDetector
	corpus     *NoveltyCorpus
	gazetteer  *geo.Gazetteer
	profiles   map[string]SourceProfile
	homeCities keywords
	topics     keywords
	now        func() time.Time
}

// Breakdown holds all terms of a score, multipliers are 1.0 in legacy mode
type Breakdown struct {
	Freshness       float64 `json:"freshness"`
	Source          float64 `json:"source"`
	Keyword         float64 `json:"keyword"`
	Sentiment       float64 `json:"sentiment"`
	Impact          float64 `json:"impact"`
	Proximity       float64 `json:"proximity"`
	Novelty         float64 `json:"novelty"`
	Currency        float64 `json:"currency"`
	HumanInterest   float64 `json:"human_interest"`
	Visual          float64 `json:"visual"`
	Temporal        float64 `json:"temporal"`
	SectionPriority float64 `json:"section_priority"`
	Breaking        float64 `json:"breaking"`
	Total           float64 `json:"total"`
	Legacy          bool    `json:"legacy"`
}

// Base is the additive part of the score
func (b Breakdown) Base() float64 {
	return b.Freshness + b.Source + b.Keyword + b.Sentiment
}

// Multipliers is the product of the six factor multipliers
func (b Breakdown) Multipliers() float64 {
	return b.Impact * b.Proximity * b.Novelty * b.Currency * b.HumanInterest * b.Visual
}

var errNonFinite = errors.New("non-finite score")

// New makes a scoring engine
func New(p Params) *Engine {
	settings := p.Settings
	if settings == nil {
		def := config.DefaultSettings()
		settings = &def
	}
	res := &Engine{
		settings:   settings,
		detector:   p.Detector,
		corpus:     p.Corpus,
		gazetteer:  p.Gazetteer,
		profiles:   p.Profiles,
		homeCities: newKeywords(settings.HomeCities...),
		topics:     newKeywords(settings.FollowedTopics...),
		now:        p.Now,
	}
	if res.gazetteer == nil {
		res.gazetteer = geo.New()
	}
	if res.profiles == nil {
		res.profiles = DefaultProfiles
	}
	if res.now == nil {
		res.now = time.Now
	}
	return res
}

func (e *Engine) weights() *config.RankingWeights { return &e.settings.RankingWeights }

// Score runs the breaking detector on the article, records its tokens in the novelty corpus,
// sets ImpactScore and the breaking fields
func (e *Engine) Score(a *domain.Article) float64 {
	now := e.now()
	if e.detector != nil {
		res := e.detector.Observe(*a, now)
		a.IsBreaking, a.BreakingScore = res.Breaking, res.Score
	}
	b := e.compute(a, now, true)
	a.ImpactScore = b.Total
	return b.Total
}

// ScoreAll scores every article in place
func (e *Engine) ScoreAll(articles []domain.Article) {
	for i := range articles {
		e.Score(&articles[i])
	}
}

// Explain returns all score terms of the article without touching the detector or the novelty corpus.
// Breaking fields are taken from the article as set by the last Score.
func (e *Engine) Explain(a domain.Article) Breakdown {
	return e.compute(&a, e.now(), false)
}

func (e *Engine) compute(a *domain.Article, now time.Time, record bool) Breakdown {
	if !e.settings.EnableNewScoring {
		return e.legacy(a, now)
	}
	b, err := e.full(a, now, record)
	if err != nil {
		lgr.Printf("[WARN] full scoring failed for %q, fallback to legacy: %v", a.Title, err)
		return e.legacy(a, now)
	}
	return b
}

func (e *Engine) base(a *domain.Article, now time.Time) Breakdown {
	lower := strings.ToLower(a.Text())
	return Breakdown{
		Freshness:       Freshness(a.Age(now), e.settings.Tuning.FreshnessWindow, e.weights().Base.Freshness),
		Source:          e.sourceComponent(a),
		Keyword:         e.keywordBoost(lower),
		Sentiment:       e.sentimentBoost(a),
		Impact:          1,
		Proximity:       1,
		Novelty:         1,
		Currency:        1,
		HumanInterest:   1,
		Visual:          1,
		Temporal:        1,
		SectionPriority: e.sectionPriority(a.Section),
		Breaking:        breakingMultiplier(a),
	}
}

func (e *Engine) legacy(a *domain.Article, now time.Time) Breakdown {
	b := e.base(a, now)
	b.Legacy = true
	b.Total = b.Base() * b.SectionPriority * b.Breaking
	return b
}

func (e *Engine) full(a *domain.Article, now time.Time, record bool) (b Breakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in scoring: %v", r)
		}
	}()

	text := a.Text()
	lower := strings.ToLower(text)
	b = e.base(a, now)
	b.Impact = e.impact(lower)
	b.Proximity = e.proximity(text)
	b.Novelty = e.novelty(text, record)
	b.Currency = e.currency(lower)
	b.HumanInterest = e.humanInterest(lower)
	b.Visual = e.visual(a.ImageURL)
	b.Temporal = e.temporal(a.Section, now)
	b.Total = b.Base() * b.Multipliers() * b.Temporal * b.SectionPriority * b.Breaking

	if math.IsNaN(b.Total) || math.IsInf(b.Total, 0) {
		return Breakdown{}, errNonFinite
	}
	return b, nil
}
