package cli

import (
	"bytes"
	"testing"

	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/bastiangx/wordgram/pkg/suggest"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(corpus string, noFilter bool) (*QueryHandler, *bytes.Buffer) {
	var out bytes.Buffer
	completer := suggest.NewCompleter(ngram.NewModel(corpus, 2))
	return NewQueryHandler(completer, &out, 1, 10, 5, noFilter), &out
}

func TestQueryComplete(t *testing.T) {
	h, out := newHandler("cat cat car", false)

	require.NoError(t, h.Complete("ca"))
	assert.Equal(t, " 1. cat                      0.666667\n 2. car                      0.333333\n", out.String())
}

func TestQueryCompleteMarksPartialWords(t *testing.T) {
	h, out := newHandler("abcdefghijklmnopqrstuvwxyz", false)

	require.NoError(t, h.Complete("a"))
	assert.Contains(t, out.String(), "abcdefghijklmnopqrstu")
	assert.Contains(t, out.String(), " *\n")
}

func TestQueryCompleteValidation(t *testing.T) {
	h, out := newHandler("cat", false)

	assert.Error(t, h.Complete(""))
	assert.Error(t, h.Complete("abcdefghijk"))
	assert.Empty(t, out.String())

	require.NoError(t, h.Complete("42"))
	assert.Equal(t, "No suggestions\n", out.String())
}

func TestQueryCompleteNoFilter(t *testing.T) {
	h, out := newHandler("aaa", true)

	require.NoError(t, h.Complete("aaa"))
	assert.NotEqual(t, "No suggestions\n", out.String())
}

func TestQueryScore(t *testing.T) {
	h, out := newHandler("cat car", false)

	require.NoError(t, h.Score("cat"))
	assert.Equal(t, "cat\t0.5\t-0.693147\n", out.String())
	assert.Error(t, h.Score(""))
}

func TestQueryJSON(t *testing.T) {
	h, out := newHandler("cat cat car", false)
	h.SetJSON(true)

	require.NoError(t, h.Complete("ca"))
	var result QueryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "ca", result.Prefix)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, QuerySuggest{Word: "cat", Rank: 1, Probability: 2.0 / 3.0, Known: true}, result.Suggestions[0])

	out.Reset()
	require.NoError(t, h.Complete("42"))
	assert.JSONEq(t, `{"prefix":"42","suggestions":[]}`, out.String())

	out.Reset()
	require.NoError(t, h.Score("dog"))
	var score ScoreResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &score))
	assert.Equal(t, ngram.DefaultFallbackProbability, score.Probability)
}
