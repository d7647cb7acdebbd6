/*
Package ngram implements a character-level n-gram language model used for word completion.

A Model is trained once, at construction, from a raw corpus string. Training normalizes the
corpus into lowercase words, pads every word with N-1 boundary markers on each side and counts,
for every (N-1)-character context, how often each character follows it.

After construction a Model is read-only: predictions and word scores only read its tables, so a
single Model can serve concurrent queries without locking.

# Prediction

PredictTopWords runs a probability-bounded breadth-first expansion from the prefix. Each round
extends every live candidate by the characters observed after its context, most frequent first,
and multiplies the candidate's probability by the transition probability. A candidate that
reaches the boundary marker becomes a completed word. Expansion stops after MaxRounds rounds and
drops any branch whose probability falls below MinProbability.

	m := ngram.NewModel("the then they them", 2)
	m.PredictTopWords("th", 3) // [the then they]

# Scoring

WordProbability multiplies the conditional probabilities of every transition in a padded word. A
word with any unseen transition scores FallbackProbability.
*/
package ngram

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Boundary marks the start and end of a padded word. Cleaning strips it from real words.
const Boundary = '$'

const (
	DefaultN                   = 2
	DefaultMaxRounds           = 20
	DefaultMinProbability      = 1e-6
	DefaultFallbackProbability = 0.0001
)

// Options controls training and the bounds of the prediction search.
// Zero fields take their defaults.
type Options struct {
	// N is the n-gram order. Contexts are N-1 characters long.
	N int
	// MaxRounds caps the number of expansion rounds per prediction.
	MaxRounds int
	// MinProbability prunes candidates and transitions below this cumulative probability.
	MinProbability float64
	// FallbackProbability is returned by WordProbability for words with unseen transitions.
	FallbackProbability float64
	// DropPartial stops prediction from returning unfinished candidates when no word completes.
	DropPartial bool
}

// DefaultOptions returns a bigram configuration.
func DefaultOptions() Options {
	return Options{
		N:                   DefaultN,
		MaxRounds:           DefaultMaxRounds,
		MinProbability:      DefaultMinProbability,
		FallbackProbability: DefaultFallbackProbability,
	}
}

// sanitize replaces zero fields with defaults and out-of-range ones with defaults plus a warning.
func (o Options) sanitize() Options {
	def := DefaultOptions()
	switch {
	case o.N == 0:
		o.N = def.N
	case o.N < 0:
		log.Warnf("Invalid n-gram order %d, using %d", o.N, def.N)
		o.N = def.N
	}
	switch {
	case o.MaxRounds == 0:
		o.MaxRounds = def.MaxRounds
	case o.MaxRounds < 0:
		log.Warnf("Invalid max rounds %d, using %d", o.MaxRounds, def.MaxRounds)
		o.MaxRounds = def.MaxRounds
	}
	switch {
	case o.MinProbability == 0:
		o.MinProbability = def.MinProbability
	case o.MinProbability < 0 || o.MinProbability > 1:
		log.Warnf("Invalid min probability %g, using %g", o.MinProbability, def.MinProbability)
		o.MinProbability = def.MinProbability
	}
	switch {
	case o.FallbackProbability == 0:
		o.FallbackProbability = def.FallbackProbability
	case o.FallbackProbability < 0 || o.FallbackProbability > 1:
		log.Warnf("Invalid fallback probability %g, using %g", o.FallbackProbability, def.FallbackProbability)
		o.FallbackProbability = def.FallbackProbability
	}
	return o
}

// Distribution counts the characters observed after one context.
type Distribution struct {
	counts map[byte]int
	order  []byte // first-seen order
	ranked []byte // descending count, ties in first-seen order
	total  int
}

func newDistribution() *Distribution {
	return &Distribution{counts: make(map[byte]int)}
}

func (d *Distribution) add(c byte) {
	if _, ok := d.counts[c]; !ok {
		d.order = append(d.order, c)
	}
	d.counts[c]++
	d.total++
}

// freeze fixes the ranking once training is done.
func (d *Distribution) freeze() {
	d.ranked = make([]byte, len(d.order))
	copy(d.ranked, d.order)
	sort.SliceStable(d.ranked, func(i, j int) bool {
		return d.counts[d.ranked[i]] > d.counts[d.ranked[j]]
	})
}

// Count returns how often c followed the context.
func (d *Distribution) Count(c byte) int {
	return d.counts[c]
}

// Total is the sum of all counts, always at least 1.
func (d *Distribution) Total() int {
	return d.total
}

// MostCommon returns the observed characters ordered by descending count.
func (d *Distribution) MostCommon() []byte {
	out := make([]byte, len(d.ranked))
	copy(out, d.ranked)
	return out
}

// Model is a trained character n-gram model. It is immutable after NewModel or New returns.
type Model struct {
	opts        Options
	pad         string
	table       map[string]*Distribution
	vocab       map[string]int
	index       *patricia.Trie
	corpusSize  int
	transitions int
}

// NewModel trains a model of order n with default search bounds.
// An empty corpus yields an empty, queryable model.
func NewModel(corpus string, n int) *Model {
	opts := DefaultOptions()
	opts.N = n
	if n == 0 {
		log.Warnf("Invalid n-gram order 0, using %d", DefaultN)
	}
	return New(corpus, opts)
}

// New trains a model with explicit options.
func New(corpus string, opts Options) *Model {
	opts = opts.sanitize()
	m := &Model{
		opts:       opts,
		pad:        strings.Repeat(string(Boundary), opts.N-1),
		table:      make(map[string]*Distribution),
		vocab:      make(map[string]int),
		index:      patricia.NewTrie(),
		corpusSize: len(corpus),
	}
	if corpus != "" {
		m.train(corpus)
	}
	log.Debugf("Trained %d-gram model: contexts=[%d], vocabulary=[%d], corpus=[%d bytes]",
		opts.N, len(m.table), len(m.vocab), m.corpusSize)
	return m
}

func (m *Model) train(corpus string) {
	n := m.opts.N
	for _, word := range Words(corpus) {
		m.addWord(word)

		padded := m.pad + word + m.pad
		for pos := 0; pos+n <= len(padded); pos++ {
			context := padded[pos : pos+n-1]
			dist, ok := m.table[context]
			if !ok {
				dist = newDistribution()
				m.table[strings.Clone(context)] = dist
			}
			dist.add(padded[pos+n-1])
			m.transitions++
		}
	}

	for _, dist := range m.table {
		dist.freeze()
	}
}

// contextOf returns the lookup context for a candidate: its last N-1 characters,
// left-padded with boundary markers when it is shorter.
func (m *Model) contextOf(s string) string {
	k := len(m.pad)
	if k == 0 {
		return ""
	}
	if len(s) < k {
		s = m.pad[:k-len(s)] + s
	}
	return s[len(s)-k:]
}

// N returns the n-gram order.
func (m *Model) N() int {
	return m.opts.N
}

// Options returns the effective options after defaults were applied.
func (m *Model) Options() Options {
	return m.opts
}

// Distribution returns the next-character distribution of a context.
func (m *Model) Distribution(context string) (*Distribution, bool) {
	d, ok := m.table[context]
	return d, ok
}

// Contexts returns every trained context in lexical order.
func (m *Model) Contexts() []string {
	contexts := make([]string, 0, len(m.table))
	for c := range m.table {
		contexts = append(contexts, c)
	}
	sort.Strings(contexts)
	return contexts
}

// Table returns a deep copy of the frequency table keyed by context and next character.
func (m *Model) Table() map[string]map[string]int {
	out := make(map[string]map[string]int, len(m.table))
	for context, dist := range m.table {
		next := make(map[string]int, len(dist.counts))
		for c, count := range dist.counts {
			next[string(c)] = count
		}
		out[context] = next
	}
	return out
}

// Stats reports table sizes and training totals.
func (m *Model) Stats() map[string]int {
	return map[string]int{
		"n":           m.opts.N,
		"contexts":    len(m.table),
		"vocabulary":  len(m.vocab),
		"corpusSize":  m.corpusSize,
		"transitions": m.transitions,
	}
}
