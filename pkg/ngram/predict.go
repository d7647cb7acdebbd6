package ngram

import (
	"sort"
	"strings"
)

// Prediction is a predicted word with its estimated probability.
type Prediction struct {
	Word        string
	Probability float64
}

type candidate struct {
	text string
	prob float64
}

// PredictTopWords returns up to topK completions of prefix, most probable first.
// An empty prefix, a topK <= 0 or a prefix with no trained context gives no predictions.
func (m *Model) PredictTopWords(prefix string, topK int) []string {
	predictions := m.Predict(prefix, topK)
	words := make([]string, len(predictions))
	for i, p := range predictions {
		words[i] = p.Word
	}
	return words
}

// Predict is PredictTopWords with the probability of each word kept.
//
// When no candidate reaches a boundary marker within MaxRounds, the candidates still alive
// after the last round are returned instead, unless Options.DropPartial is set. Those words
// start with prefix but are unfinished.
func (m *Model) Predict(prefix string, topK int) []Prediction {
	if prefix == "" || topK <= 0 {
		return nil
	}

	candidates := []candidate{{text: prefix, prob: 1.0}}
	var completed []Prediction

	for round := 0; len(candidates) > 0 && round < m.opts.MaxRounds; round++ {
		candidates, completed = m.expand(prefix, candidates, completed)
	}

	pool := completed
	if len(pool) == 0 && !m.opts.DropPartial {
		pool = make([]Prediction, len(candidates))
		for i, c := range candidates {
			pool[i] = Prediction{Word: c.text, Probability: c.prob}
		}
	}
	return topPredictions(pool, topK)
}

// expand runs one search round. It returns the candidates for the next round and
// the completed words found so far.
func (m *Model) expand(prefix string, candidates []candidate, completed []Prediction) ([]candidate, []Prediction) {
	var next []candidate
	seen := make(map[string]struct{})

	for _, cand := range candidates {
		if cand.prob < m.opts.MinProbability {
			continue
		}
		dist, ok := m.table[m.contextOf(cand.text)]
		if !ok {
			continue
		}

		total := float64(dist.total)
		for _, c := range dist.ranked {
			prob := cand.prob * (float64(dist.counts[c]) / total)
			if prob < m.opts.MinProbability {
				continue
			}

			word := cand.text + string(c)
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}

			if c == Boundary {
				final := strings.Trim(word, string(Boundary))
				if strings.HasPrefix(final, prefix) {
					completed = append(completed, Prediction{Word: final, Probability: prob})
				}
				continue
			}
			next = append(next, candidate{text: word, prob: prob})
		}
	}
	return next, completed
}

// topPredictions orders predictions by descending probability, keeping encounter order
// for ties, and returns the first topK distinct words.
func topPredictions(pool []Prediction, topK int) []Prediction {
	sorted := make([]Prediction, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	out := make([]Prediction, 0, min(topK, len(sorted)))
	seen := make(map[string]struct{}, len(sorted))
	for _, p := range sorted {
		if _, dup := seen[p.Word]; dup {
			continue
		}
		seen[p.Word] = struct{}{}
		out = append(out, p)
		if len(out) == topK {
			break
		}
	}
	return out
}
