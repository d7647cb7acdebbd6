package suggest

import (
	"fmt"
	"testing"

	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Normalizes to "cat car dog": "a" is followed by "t" and "r" equally often.
const testCorpus = "Cat, car! Dog."

func words(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Word
	}
	return out
}

func TestComplete(t *testing.T) {
	c := NewCompleter(ngram.NewModel(testCorpus, 2))

	testCases := []struct {
		prefix      string
		limit       int
		expected    []string
		description string
	}{
		{"ca", 10, []string{"cat", "car"}, "Lowercase prefix"},
		{"Ca", 2, []string{"Cat", "Car"}, "Capitalization applied"},
		{"CA", 1, []string{"CAt"}, "Only typed positions are capitalized"},
		{"zz", 10, []string{}, "Unknown prefix"},
		{"", 10, []string{}, "Empty prefix"},
		{"ca", 0, []string{}, "Zero limit"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, words(c.Complete(tc.prefix, tc.limit)))
		})
	}
}

func TestCompleteMatchesModel(t *testing.T) {
	m := ngram.NewModel(testCorpus, 2)
	c := NewCompleter(m)

	for _, prefix := range []string{"c", "ca", "d", "do", "t", "x"} {
		assert.Equal(t, m.PredictTopWords(prefix, 5), words(c.Complete(prefix, 5)), "prefix %q", prefix)
	}
}

func TestCompleteRanksAndKnown(t *testing.T) {
	c := NewCompleter(ngram.NewModel("cat cat car", 2))

	got := c.Complete("c", 5)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Word: "cat", Probability: 2.0 / 3.0, Rank: 1, Known: true}, got[0])
	assert.Equal(t, uint16(2), got[1].Rank)
	assert.True(t, got[1].Known)

	partial := NewCompleter(ngram.NewModel("abcdefghijklmnopqrstuvwxyz", 2))
	fallback := partial.Complete("a", 1)
	require.Len(t, fallback, 1)
	assert.False(t, fallback[0].Known)
}

func TestCompleteExcludeInput(t *testing.T) {
	c := NewCompleter(ngram.NewModel("the then they", 2))

	assert.Equal(t, []string{"the", "then"}, words(c.Complete("the", 2)))

	c.SetExcludeInput(true)
	assert.Equal(t, []string{"then", "they"}, words(c.Complete("the", 2)))
	assert.Equal(t, []string{"Then", "They"}, words(c.Complete("The", 2)))
}

func TestKnownWords(t *testing.T) {
	c := NewCompleter(ngram.NewModel("the the then they other", 2))

	assert.Equal(t, []string{"The", "Then"}, words(c.KnownWords("Th", 2)))

	got := c.KnownWords("the", 10)
	require.Len(t, got, 3)
	assert.Equal(t, Suggestion{Word: "the", Probability: c.Score("the"), Rank: 1, Known: true}, got[0])
	assert.Equal(t, uint16(3), got[2].Rank)

	assert.Empty(t, c.KnownWords("x", 10))
	assert.Empty(t, c.KnownWords("", 10))
}

func TestCachedCompleter(t *testing.T) {
	m := ngram.NewModel(testCorpus, 2)
	c := NewCachedCompleter(m, 2)

	first := c.Complete("ca", 3)
	second := c.Complete("ca", 3)
	assert.Equal(t, first, second)

	stats := c.Stats()
	assert.Equal(t, 1, stats["hotCacheHits"])
	assert.Equal(t, 1, stats["hotCacheMisses"])
	assert.Equal(t, 2, stats["completions"])
	assert.Equal(t, 1, stats["hotCache"])

	// Capitalization is applied after the cache, on the shared lowercase result.
	assert.Equal(t, []string{"Cat", "Car"}, words(c.Complete("Ca", 3)))
	assert.Equal(t, first, c.Complete("ca", 3))
}

func TestHotCacheEviction(t *testing.T) {
	hc := NewHotCache(2)
	hc.Put("a", []ngram.Prediction{{Word: "a"}})
	hc.Put("b", []ngram.Prediction{{Word: "b"}})
	_, ok := hc.Get("a")
	require.True(t, ok)

	hc.Put("c", []ngram.Prediction{{Word: "c"}})

	_, ok = hc.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = hc.Get("a")
	assert.True(t, ok)
	_, ok = hc.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, hc.Stats()["hotCacheEntries"])

	disabled := NewHotCache(0)
	disabled.Put("a", nil)
	_, ok = disabled.Get("a")
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	c := NewCompleterFromCorpus("cat car", ngram.Options{})

	assert.InDelta(t, 0.5, c.Score("Cat"), 1e-12)
	assert.Equal(t, ngram.DefaultFallbackProbability, c.Score("dog"))
	assert.Less(t, c.LogScore("cat"), 0.0)
}

func TestApplyCapitalization(t *testing.T) {
	testCases := []struct {
		word     string
		caps     []bool
		expected string
	}{
		{"hello", nil, "hello"},
		{"hello", []bool{true}, "Hello"},
		{"hello", []bool{true, false, true}, "HeLlo"},
		{"hi", []bool{true, true, true, true}, "HI"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s%v", tc.word, tc.caps), func(t *testing.T) {
			assert.Equal(t, tc.expected, ApplyCapitalization(tc.word, tc.caps))
		})
	}
}

func BenchmarkComplete(b *testing.B) {
	c := NewCachedCompleter(ngram.NewModel(testCorpus, 2), 128)
	prefixes := []string{"c", "ca", "d", "do", "t", "x"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Complete(prefixes[i%len(prefixes)], 10)
	}
}
