package scoring

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-pkgz/lgr"
)

// DefaultMaxCorpusTokens is the corpus size after which it starts over
const DefaultMaxCorpusTokens = 50000

// noveltyThreshold is how many times a token can be seen and still count as novel
const noveltyThreshold = 2

// NoveltyCorpus counts tokens seen during the process lifetime, safe for concurrent use
type NoveltyCorpus struct {
	mu        sync.Mutex
	counts    map[string]int
	maxTokens int
}

// NewNoveltyCorpus makes an empty corpus, maxTokens <= 0 uses DefaultMaxCorpusTokens
func NewNoveltyCorpus(maxTokens int) *NoveltyCorpus {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxCorpusTokens
	}
	return &NoveltyCorpus{counts: map[string]int{}, maxTokens: maxTokens}
}

// Observe returns the share of the text's distinct tokens seen fewer than two times before,
// and records the tokens
func (c *NoveltyCorpus) Observe(text string) float64 {
	tokens := noveltyTokens(text)
	if len(tokens) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ratio := c.ratio(tokens)
	for _, t := range tokens {
		c.counts[t]++
	}
	if len(c.counts) > c.maxTokens {
		lgr.Printf("[DEBUG] novelty corpus reached %d tokens, reset", len(c.counts))
		c.counts = map[string]int{}
	}
	return ratio
}

// Peek returns the same share as Observe without recording anything
func (c *NoveltyCorpus) Peek(text string) float64 {
	tokens := noveltyTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ratio(tokens)
}

func (c *NoveltyCorpus) ratio(tokens []string) float64 {
	novel := 0
	for _, t := range tokens {
		if c.counts[t] < noveltyThreshold {
			novel++
		}
	}
	return float64(novel) / float64(len(tokens))
}

// Len returns the number of distinct tokens in the corpus
func (c *NoveltyCorpus) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

// noveltyTokens returns distinct lowercase tokens of three or more characters, stopwords excluded
func noveltyTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		res = append(res, f)
	}
	return res
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "that": {}, "this": {}, "are": {}, "was": {},
	"were": {}, "has": {}, "have": {}, "had": {}, "its": {}, "into": {}, "over": {}, "after": {}, "amid": {},
	"says": {}, "said": {}, "will": {}, "not": {}, "but": {}, "his": {}, "her": {}, "their": {}, "they": {},
	"who": {}, "what": {}, "when": {}, "new": {}, "more": {}, "than": {}, "out": {}, "about": {},
}
