// Package sentiment implements lexicon based polarity scoring for market relevant articles
package sentiment

import (
	"strings"
	"unicode"

	"github.com/umputun/newsdesk/pkg/domain"
)

const (
	titleWeight       = 0.6
	descriptionWeight = 0.4
	labelThreshold    = 0.05
)

// Result is a polarity score of a single text
type Result struct {
	Score       int     // sum of matched token polarities
	Comparative float64 // score divided by token count
	Tokens      int
}

// Analyzer scores text against a fixed word polarity table
type Analyzer struct {
	lexicon         map[string]int
	financeKeywords []string
}

// New makes an analyzer with the built-in lexicon
func New() *Analyzer {
	return &Analyzer{lexicon: lexicon, financeKeywords: financeKeywords}
}

// Score computes polarity of a text
func (a *Analyzer) Score(text string) Result {
	tokens := tokenize(text)
	res := Result{Tokens: len(tokens)}
	if len(tokens) == 0 {
		return res
	}
	for _, t := range tokens {
		res.Score += a.lexicon[t]
	}
	res.Comparative = float64(res.Score) / float64(len(tokens))
	return res
}

// Analyze blends title and description comparative scores and labels the result.
// If one of the parts is empty the other one is used alone.
func (a *Analyzer) Analyze(title, description string) domain.Sentiment {
	t, d := a.Score(title), a.Score(description)
	var blended float64
	switch {
	case t.Tokens == 0 && d.Tokens == 0:
		blended = 0
	case d.Tokens == 0:
		blended = t.Comparative
	case t.Tokens == 0:
		blended = d.Comparative
	default:
		blended = titleWeight*t.Comparative + descriptionWeight*d.Comparative
	}
	return domain.Sentiment{Label: Label(blended), Score: blended}
}

// ForArticle returns sentiment for finance relevant articles and nil for everything else
func (a *Analyzer) ForArticle(section, title, description string) *domain.Sentiment {
	if !a.Relevant(section, title+" "+description) {
		return nil
	}
	s := a.Analyze(title, description)
	return &s
}

// Relevant reports whether the article is market related, by section or finance keywords
func (a *Analyzer) Relevant(section, text string) bool {
	if section == domain.SectionBusiness {
		return true
	}
	tokens := tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	for _, k := range a.financeKeywords {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}

// Label maps a comparative score to a sentiment label
func Label(comparative float64) domain.SentimentLabel {
	switch {
	case comparative > labelThreshold:
		return domain.SentimentPositive
	case comparative < -labelThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

var financeKeywords = []string{
	"stock", "stocks", "market", "markets", "shares", "sensex", "nifty", "ipo", "earnings", "profit",
	"revenue", "investors", "rupee", "bank", "economy", "inflation", "gdp", "bitcoin", "crypto",
	"dividend", "valuation", "bonds", "trading", "rbi", "fed",
}

var lexicon = map[string]int{
	// general
	"good": 3, "great": 3, "best": 3, "win": 4, "wins": 4, "won": 3, "success": 2, "successful": 3,
	"happy": 3, "hope": 2, "celebrate": 3, "boost": 1, "boosts": 1, "strong": 2, "improve": 2,
	"improves": 2, "improved": 2, "record": 1, "breakthrough": 3, "benefit": 2, "safe": 1,
	"bad": -3, "worst": -3, "fail": -2, "fails": -2, "failed": -2, "failure": -2, "crisis": -3,
	"death": -2, "dead": -3, "kill": -3, "killed": -3, "attack": -1, "war": -2, "fear": -2,
	"fears": -2, "threat": -2, "risk": -2, "risks": -2, "concern": -1, "concerns": -1, "warn": -2,
	"warns": -2, "warning": -3, "scandal": -3, "fraud": -4, "probe": -1, "ban": -2, "protest": -2,
	"weak": -2, "worry": -3, "worries": -3, "disaster": -2, "collapse": -2,

	// finance and markets
	"gain": 2, "gains": 2, "surge": 2, "surges": 2, "soar": 2, "soars": 2, "rally": 2, "rallies": 2,
	"jump": 1, "jumps": 1, "rise": 1, "rises": 1, "climb": 1, "climbs": 1, "profit": 2, "profits": 2,
	"growth": 2, "bullish": 2, "upgrade": 2, "upgraded": 2, "beat": 1, "beats": 1, "outperform": 2,
	"record-high": 3, "dividend": 1, "recovery": 2, "rebound": 2, "expansion": 1, "optimism": 2,
	"loss": -3, "losses": -3, "fall": -1, "falls": -1, "drop": -1, "drops": -1, "plunge": -3,
	"plunges": -3, "slump": -3, "slumps": -3, "crash": -3, "crashes": -3, "tumble": -2,
	"tumbles": -2, "decline": -1, "declines": -1, "bearish": -2, "downgrade": -2, "downgraded": -2,
	"miss": -2, "misses": -2, "recession": -3, "inflation": -1, "debt": -1, "default": -2,
	"layoffs": -2, "bankruptcy": -3, "selloff": -2, "sell-off": -2, "volatility": -1, "slowdown": -2,

	// tech
	"launch": 1, "launches": 1, "innovative": 2, "innovation": 2, "upgrade-ready": 1,
	"outage": -2, "breach": -3, "hack": -2, "hacked": -2, "vulnerability": -2, "bug": -1, "glitch": -1,
}
