package suggest

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/charmbracelet/log"
)

// Suggestion is a single completion.
type Suggestion struct {
	Word        string
	Probability float64
	Rank        uint16
	// Known is set when the word occurred verbatim in the training corpus.
	// Unfinished fallback predictions are usually not known.
	Known bool
}

// Completer answers completion queries from a trained model.
// It is safe for concurrent use once configured.
type Completer struct {
	model        *ngram.Model
	hotCache     *HotCache
	excludeInput bool
	completions  atomic.Int64
}

// NewCompleter wraps a trained model.
func NewCompleter(model *ngram.Model) *Completer {
	return &Completer{model: model}
}

// NewCachedCompleter wraps a trained model and caches up to maxEntries prediction results.
func NewCachedCompleter(model *ngram.Model, maxEntries int) *Completer {
	return &Completer{
		model:    model,
		hotCache: NewHotCache(maxEntries),
	}
}

// NewCompleterFromCorpus trains a model on corpus and wraps it.
func NewCompleterFromCorpus(corpus string, opts ngram.Options) *Completer {
	return NewCompleter(ngram.New(corpus, opts))
}

// SetExcludeInput drops suggestions equal to the typed prefix.
func (c *Completer) SetExcludeInput(exclude bool) {
	c.excludeInput = exclude
}

// Model returns the underlying model.
func (c *Completer) Model() *ngram.Model {
	return c.model
}

// Complete predicts words for prefix. The model only knows lowercase text, so the prefix is
// lowercased for the query and its capitalization is copied back onto each result.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if prefix == "" || limit <= 0 {
		return []Suggestion{}
	}
	c.completions.Add(1)

	lowerPrefix := strings.ToLower(prefix)
	capitalPositions := capitalsOf(prefix)

	fetch := limit
	if c.excludeInput {
		fetch++
	}
	predictions := c.predict(lowerPrefix, fetch)

	filter := utils.NewSuggestionFilter(lowerPrefix, c.excludeInput)
	suggestions := make([]Suggestion, 0, min(limit, len(predictions)))
	for _, p := range predictions {
		if !filter.ShouldInclude(p.Word) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Word:        ApplyCapitalization(p.Word, capitalPositions),
			Probability: p.Probability,
			Known:       c.model.HasWord(p.Word),
		})
		if len(suggestions) == limit {
			break
		}
	}

	ranks := utils.CreateRankList(len(suggestions))
	for i := range suggestions {
		suggestions[i].Rank = ranks[i]
	}

	log.Debug("Completed prefix", "prefix", prefix, "count", len(suggestions))
	return suggestions
}

// KnownWords lists corpus words starting with prefix, most frequent first. Each word carries
// its model probability so results can be compared with Complete.
func (c *Completer) KnownWords(prefix string, limit int) []Suggestion {
	if prefix == "" || limit <= 0 {
		return []Suggestion{}
	}

	capitalPositions := capitalsOf(prefix)
	words := c.model.WordsWithPrefix(strings.ToLower(prefix), limit)
	ranks := utils.CreateRankList(len(words))

	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{
			Word:        ApplyCapitalization(w, capitalPositions),
			Probability: c.model.WordProbability(w),
			Rank:        ranks[i],
			Known:       true,
		}
	}
	return suggestions
}

func (c *Completer) predict(lowerPrefix string, limit int) []ngram.Prediction {
	if c.hotCache == nil {
		return c.model.Predict(lowerPrefix, limit)
	}
	key := lowerPrefix + "\x00" + strconv.Itoa(limit)
	if cached, ok := c.hotCache.Get(key); ok {
		return cached
	}
	predictions := c.model.Predict(lowerPrefix, limit)
	c.hotCache.Put(key, predictions)
	return predictions
}

// Score returns the model probability of word, lowercased.
func (c *Completer) Score(word string) float64 {
	return c.model.WordProbability(strings.ToLower(word))
}

// LogScore returns the log probability of word, lowercased.
func (c *Completer) LogScore(word string) float64 {
	return c.model.WordLogProbability(strings.ToLower(word))
}

// Stats merges model, cache and request counters.
func (c *Completer) Stats() map[string]int {
	stats := c.model.Stats()
	stats["completions"] = int(c.completions.Load())

	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
		stats["hotCache"] = 1
	} else {
		stats["hotCache"] = 0
	}
	return stats
}

func capitalsOf(prefix string) []bool {
	positions := make([]bool, 0, len(prefix))
	for _, r := range prefix {
		positions = append(positions, r >= 'A' && r <= 'Z')
	}
	return positions
}

// ApplyCapitalization uppercases the letters of word at the positions capitalized in the prefix.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
