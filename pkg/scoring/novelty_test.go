package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoveltyCorpus_Observe(t *testing.T) {
	c := NewNoveltyCorpus(0)
	assert.InDelta(t, 1.0, c.Observe("alpha beta gamma"), 0.0001)
	assert.InDelta(t, 1.0, c.Observe("alpha beta gamma"), 0.0001)
	assert.InDelta(t, 0.0, c.Observe("alpha beta gamma"), 0.0001)
	assert.InDelta(t, 0.5, c.Observe("Alpha, delta!"), 0.0001)
	assert.Equal(t, 4, c.Len())

	assert.Zero(t, c.Observe("an of to the"), "short tokens and stopwords ignored")
}

func TestNoveltyCorpus_Peek(t *testing.T) {
	c := NewNoveltyCorpus(0)
	assert.InDelta(t, 1.0, c.Peek("alpha beta"), 0.0001)
	assert.Zero(t, c.Len(), "peek records nothing")
	c.Observe("alpha beta")
	c.Observe("alpha")
	assert.InDelta(t, 0.5, c.Peek("alpha beta"), 0.0001)
	assert.Equal(t, 2, c.Len())
	assert.Zero(t, c.Peek("of to"))
}

func TestNoveltyCorpus_RepeatedTokensCountOnce(t *testing.T) {
	c := NewNoveltyCorpus(0)
	c.Observe("rain rain rain")
	assert.InDelta(t, 1.0, c.Observe("rain"), 0.0001, "token seen once so far")
}

func TestNoveltyCorpus_Reset(t *testing.T) {
	c := NewNoveltyCorpus(3)
	c.Observe("aaa bbb ccc")
	assert.Equal(t, 3, c.Len())
	c.Observe("ddd")
	assert.Equal(t, 0, c.Len(), "reset after exceeding max tokens")
	assert.InDelta(t, 1.0, c.Observe("aaa"), 0.0001)
}
