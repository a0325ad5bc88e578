package scoring

import (
	"regexp"
	"strings"
)

// keywords matches whole words and phrases in lowercase text
type keywords []*regexp.Regexp

func newKeywords(words ...string) keywords {
	res := make(keywords, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

// count returns the number of distinct keywords found in lower
func (k keywords) count(lower string) int {
	n := 0
	for _, re := range k {
		if re.MatchString(lower) {
			n++
		}
	}
	return n
}

func (k keywords) any(lower string) bool {
	for _, re := range k {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

var highImpactKeywords = newKeywords(
	"breaking", "urgent", "killed", "dead", "earthquake", "explosion", "blast", "attack", "crash",
	"flood", "floods", "cyclone", "election", "resigns", "arrested", "emergency", "war", "missile",
	"historic", "budget", "verdict", "record",
)

var (
	globalScale   = newKeywords("global", "worldwide", "international", "world", "united nations")
	nationalScale = newKeywords("national", "nationwide", "country", "government", "parliament", "federal", "centre")
	regionalScale = newKeywords("state", "regional", "district", "city", "municipal")

	billions  = newKeywords("billion", "billions", "trillion", "lakh crore")
	millions  = newKeywords("million", "millions", "crore", "crores")
	thousands = newKeywords("thousand", "thousands", "lakh", "lakhs")
)

var humanInterestKeywords = newKeywords(
	"heartwarming", "inspiring", "rescue", "rescued", "hero", "tragedy", "emotional", "survivor",
	"reunited", "miracle", "struggle", "dream", "journey", "brave", "community", "children", "family",
)

var (
	videoHints = []string{".mp4", ".webm", ".m3u8", ".mov", "youtube.com", "youtu.be", "vimeo.com", "/video/"}
	imageHints = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
)
