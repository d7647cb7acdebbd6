package ngram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainingCorpora = []string{
	"",
	"cat cat cat",
	"dog",
	"The quick brown fox jumps over the lazy dog.",
	"a",
	"42 ???",
	"then the they them there these those",
}

func TestTableInvariants(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, corpus := range trainingCorpora {
			t.Run(fmt.Sprintf("n%d/%q", n, corpus), func(t *testing.T) {
				m := NewModel(corpus, n)
				for context, next := range m.Table() {
					assert.Len(t, context, n-1, "context %q", context)

					sum := 0
					for _, count := range next {
						sum += count
					}
					assert.GreaterOrEqual(t, sum, 1, "context %q", context)

					dist, ok := m.Distribution(context)
					require.True(t, ok)
					assert.Equal(t, sum, dist.Total())
				}
			})
		}
	}
}

func TestTrainingDeterministic(t *testing.T) {
	for _, corpus := range trainingCorpora {
		a := NewModel(corpus, 3)
		b := NewModel(corpus, 3)
		assert.Equal(t, a.Table(), b.Table())
		assert.Equal(t, a.Vocabulary(), b.Vocabulary())
		assert.Equal(t, a.Contexts(), b.Contexts())
	}
}

func TestEmptyCorpus(t *testing.T) {
	m := NewModel("", 2)

	assert.Empty(t, m.Table())
	assert.Empty(t, m.Vocabulary())
	assert.Empty(t, m.PredictTopWords("a", 10))
	assert.Equal(t, DefaultFallbackProbability, m.WordProbability("a"))
	assert.Equal(t, 0, m.Stats()["contexts"])
}

// A corpus that cleans to nothing still trains the empty word.
func TestCorpusCleanedToNothing(t *testing.T) {
	m := NewModel("42 ???", 2)

	assert.Equal(t, map[string]map[string]int{"$": {"$": 1}}, m.Table())
	assert.Equal(t, []string{""}, m.Vocabulary())
	assert.True(t, m.HasWord(""))
	assert.Empty(t, m.WordsWithPrefix("", 0))
}

func TestTrigramTable(t *testing.T) {
	m := NewModel("cat", 3)

	expected := map[string]map[string]int{
		"$$": {"c": 1},
		"$c": {"a": 1},
		"ca": {"t": 1},
		"at": {"$": 1},
		"t$": {"$": 1},
	}
	assert.Equal(t, expected, m.Table())
	assert.Equal(t, []string{"$$", "$c", "at", "ca", "t$"}, m.Contexts())
}

func TestUnigramTable(t *testing.T) {
	m := NewModel("ab ba", 1)

	assert.Equal(t, map[string]map[string]int{"": {"a": 2, "b": 2}}, m.Table())
}

func TestMostCommonOrder(t *testing.T) {
	testCases := []struct {
		corpus      string
		expected    []byte
		description string
	}{
		{"ab ac ac", []byte("cb"), "Higher count first"},
		{"ab ac", []byte("bc"), "Ties keep first-seen order"},
		{"ad ab ac ab", []byte("bdc"), "Mixed"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			m := NewModel(tc.corpus, 2)
			dist, ok := m.Distribution("a")
			require.True(t, ok)
			assert.Equal(t, tc.expected, dist.MostCommon())
		})
	}
}

func TestInvalidOrderFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultN, NewModel("cat", 0).N())
	assert.Equal(t, DefaultN, NewModel("cat", -3).N())
	assert.Equal(t, 5, NewModel("cat", 5).N())
}

func TestOptionsDefaults(t *testing.T) {
	m := New("cat", Options{N: 3})
	opts := m.Options()

	assert.Equal(t, 3, opts.N)
	assert.Equal(t, DefaultMaxRounds, opts.MaxRounds)
	assert.Equal(t, DefaultMinProbability, opts.MinProbability)
	assert.Equal(t, DefaultFallbackProbability, opts.FallbackProbability)
	assert.False(t, opts.DropPartial)

	bad := New("cat", Options{MaxRounds: -1, MinProbability: 2, FallbackProbability: -0.5}).Options()
	assert.Equal(t, DefaultOptions(), bad)
}

func TestStats(t *testing.T) {
	corpus := "cat cat dog"
	m := NewModel(corpus, 2)
	stats := m.Stats()

	assert.Equal(t, 2, stats["n"])
	assert.Equal(t, 2, stats["vocabulary"])
	assert.Equal(t, len(corpus), stats["corpusSize"])
	// "$cat$" has 4 windows, "$dog$" has 4.
	assert.Equal(t, 12, stats["transitions"])
	assert.Equal(t, 7, stats["contexts"])
}

func TestVocabulary(t *testing.T) {
	m := NewModel("the the then they other", 2)

	assert.Equal(t, []string{"other", "the", "then", "they"}, m.Vocabulary())
	assert.Equal(t, 2, m.WordCount("the"))
	assert.True(t, m.HasWord("then"))
	assert.False(t, m.HasWord("them"))
	assert.Equal(t, []string{"the", "then", "they"}, m.WordsWithPrefix("th", 0))
	assert.Equal(t, []string{"the"}, m.WordsWithPrefix("th", 1))
	assert.Equal(t, []string{"the", "other", "then", "they"}, m.WordsWithPrefix("", 0))
	assert.Empty(t, m.WordsWithPrefix("x", 0))
}
