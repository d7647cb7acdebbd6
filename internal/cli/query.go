// Package cli answers single completion and scoring queries from the command line.
// It is meant for checking a corpus or config before wiring the server into an editor.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/suggest"
	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
)

// QueryHandler validates a query with the same rules as the server and prints the result.
type QueryHandler struct {
	completer       suggest.ICompleter
	out             io.Writer
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	jsonOutput      bool
}

// QueryResult is the JSON form of a completion query
type QueryResult struct {
	Prefix      string         `json:"prefix"`
	Suggestions []QuerySuggest `json:"suggestions"`
}

// QuerySuggest is one suggestion in a QueryResult
type QuerySuggest struct {
	Word        string  `json:"word"`
	Rank        uint16  `json:"rank"`
	Probability float64 `json:"probability"`
	Known       bool    `json:"known"`
}

// ScoreResult is the JSON form of a scoring query
type ScoreResult struct {
	Word           string  `json:"word"`
	Probability    float64 `json:"probability"`
	LogProbability float64 `json:"log_probability"`
}

// NewQueryHandler handles initialization of the QueryHandler with basic parameters
func NewQueryHandler(completer suggest.ICompleter, out io.Writer, minLength, maxLength, limit int, noFilter bool) *QueryHandler {
	return &QueryHandler{
		completer:       completer,
		out:             out,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// SetJSON switches output to one JSON document per query
func (h *QueryHandler) SetJSON(enabled bool) {
	h.jsonOutput = enabled
}

// Complete prints the suggestions for prefix, one per line with rank and probability.
// Unfinished words from the partial fallback are marked with a star.
func (h *QueryHandler) Complete(prefix string) error {
	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen < h.minPrefixLength {
		return fmt.Errorf("prefix too short: %q (min %d)", prefix, h.minPrefixLength)
	}
	if prefixLen > h.maxPrefixLength {
		return fmt.Errorf("prefix too long: %q (max %d)", prefix, h.maxPrefixLength)
	}

	var suggestions []suggest.Suggestion
	if !h.noFilter && !utils.IsValidInput(prefix) {
		log.Infof("Prefix '%s' rejected by input filter", prefix)
	} else {
		start := time.Now()
		suggestions = h.completer.Complete(prefix, h.suggestLimit)
		log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)
	}

	if h.jsonOutput {
		result := QueryResult{Prefix: prefix, Suggestions: make([]QuerySuggest, len(suggestions))}
		for i, s := range suggestions {
			result.Suggestions[i] = QuerySuggest{Word: s.Word, Rank: s.Rank, Probability: s.Probability, Known: s.Known}
		}
		return json.NewEncoder(h.out).Encode(result)
	}

	if len(suggestions) == 0 {
		_, err := fmt.Fprintln(h.out, "No suggestions")
		return err
	}
	for _, s := range suggestions {
		marker := ""
		if !s.Known {
			marker = " *"
		}
		if _, err := fmt.Fprintf(h.out, "%2d. %-24s %.6g%s\n", s.Rank, s.Word, s.Probability, marker); err != nil {
			return err
		}
	}
	return nil
}

// Score prints the linear and log probability of word as tab separated fields.
func (h *QueryHandler) Score(word string) error {
	if word == "" {
		return errors.New("missing word")
	}
	result := ScoreResult{
		Word:           word,
		Probability:    h.completer.Score(word),
		LogProbability: h.completer.LogScore(word),
	}
	if h.jsonOutput {
		return json.NewEncoder(h.out).Encode(result)
	}
	_, err := fmt.Fprintf(h.out, "%s\t%g\t%.6f\n", result.Word, result.Probability, result.LogProbability)
	return err
}
