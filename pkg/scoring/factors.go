package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/umputun/newsdesk/pkg/domain"
)

// Freshness decays linearly from weight at age zero to zero at window
func Freshness(age, window time.Duration, weight float64) float64 {
	if window <= 0 {
		return 0
	}
	return math.Max(0, float64(window-age)/float64(window)) * weight
}

// sourceComponent is authority times category relevance times weight
func (e *Engine) sourceComponent(a *domain.Article) float64 {
	p, ok := e.profiles[a.Source]
	if !ok {
		p = DefaultProfile
	}
	categoryWeight := 1.0
	if !p.StrongIn(a.Section) {
		categoryWeight = e.weights().Base.OffCategory
	}
	return p.Authority() * categoryWeight * e.weights().Base.Source
}

func (e *Engine) keywordBoost(lower string) float64 {
	if highImpactKeywords.any(lower) {
		return e.weights().Base.Keyword
	}
	return 0
}

func (e *Engine) sentimentBoost(a *domain.Article) float64 {
	if a.Sentiment == nil {
		return 0
	}
	switch a.Sentiment.Label {
	case domain.SentimentPositive:
		return e.weights().Base.PositiveSentiment
	case domain.SentimentNegative:
		return e.weights().Base.NegativeSentiment
	default:
		return 0
	}
}

func (e *Engine) sectionPriority(section string) float64 {
	if p, ok := e.weights().SectionPriority[section]; ok {
		return p
	}
	return 1.0
}

// impact is scale of consequence times magnitude of numbers, capped
func (e *Engine) impact(lower string) float64 {
	scale := 1.0
	switch {
	case globalScale.any(lower):
		scale = 1.5
	case nationalScale.any(lower):
		scale = 1.3
	case regionalScale.any(lower):
		scale = 1.1
	}
	magnitude := 1.0
	switch {
	case billions.any(lower):
		magnitude = 1.5
	case millions.any(lower):
		magnitude = 1.3
	case thousands.any(lower):
		magnitude = 1.1
	}
	return math.Min(scale*magnitude, e.weights().Factors.ImpactMax)
}

// proximity adds gazetteer weights and home city matches to 1.0, capped at the configured max
func (e *Engine) proximity(text string) float64 {
	if !e.settings.EnableProximityScoring {
		return 1.0
	}
	score := 1.0
	for _, loc := range e.gazetteer.Matches(text) {
		score += loc.Weight
	}
	lower := strings.ToLower(text)
	score += float64(e.homeCities.count(lower)) * e.weights().Geo.CityMatch
	return math.Min(score, e.weights().Geo.MaxScore)
}

func (e *Engine) novelty(text string, record bool) float64 {
	if e.corpus == nil {
		return 1.0
	}
	var ratio float64
	if record {
		ratio = e.corpus.Observe(text)
	} else {
		ratio = e.corpus.Peek(text)
	}
	maxBoost := e.weights().Factors.NoveltyMax
	return 1.0 + math.Min(ratio*maxBoost, maxBoost)
}

func (e *Engine) currency(lower string) float64 {
	if e.topics.any(lower) {
		return e.weights().Factors.Currency
	}
	return 1.0
}

func (e *Engine) humanInterest(lower string) float64 {
	f := e.weights().Factors
	return math.Min(1.0+float64(humanInterestKeywords.count(lower))*f.HumanInterestStep, f.HumanInterestMax)
}

func (e *Engine) visual(imageURL string) float64 {
	if imageURL == "" {
		return 1.0
	}
	f := e.weights().Factors
	lower := strings.ToLower(imageURL)
	for _, h := range videoHints {
		if strings.Contains(lower, h) {
			return f.Video
		}
	}
	path := lower
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	for _, h := range imageHints {
		if strings.HasSuffix(path, h) {
			return f.Image
		}
	}
	return f.OtherMedia
}

// leisureSections get the weekend boost
var leisureSections = map[string]bool{
	domain.SectionEntertainment: true,
	domain.SectionSocial:        true,
	domain.SectionLocal:         true,
	domain.SectionRegional:      true,
}

// temporal applies the entertainment boost to entertainment articles and the weekend boost
// to leisure sections on Friday, Saturday and Sunday
func (e *Engine) temporal(section string, now time.Time) float64 {
	w := e.weights().Temporal
	res := 1.0
	if section == domain.SectionEntertainment {
		res *= w.EntertainmentBoost
	}
	switch now.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		if leisureSections[section] {
			res *= w.WeekendBoost
		}
	}
	return res
}

func breakingMultiplier(a *domain.Article) float64 {
	if !a.IsBreaking {
		return 1.0
	}
	return 1.0 + a.BreakingScore
}
