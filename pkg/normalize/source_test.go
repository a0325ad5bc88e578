package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSource(t *testing.T) {
	tests := []struct {
		name  string
		title string
		link  string
		want  string
	}{
		{name: "known variant", title: "The Times of India", want: "Times of India"},
		{name: "case and spaces", title: "  the   HINDU ", want: "The Hindu"},
		{name: "aggregator query", title: `"chennai rains" - Google News`, want: "Google News"},
		{name: "aggregator plain", title: "Google News", want: "Google News"},
		{name: "section suffix", title: "BBC News - World", want: "BBC News"},
		{name: "unknown kept", title: "Some Local Daily", want: "Some Local Daily"},
		{name: "domain fallback", link: "https://timesofindia.indiatimes.com/city/x.cms", want: "Times of India"},
		{name: "unknown domain", link: "https://news.example.co.uk/a", want: "example.co.uk"},
		{name: "nothing", want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanSource(tt.title, tt.link))
		})
	}
}
