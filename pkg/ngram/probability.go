package ngram

import "math"

// WordProbability multiplies the conditional probability of every transition of the padded
// word. If any context or transition was never trained it returns FallbackProbability for the
// whole word.
//
// The product is taken in linear space, so long words can underflow to zero.
// WordLogProbability avoids that.
func (m *Model) WordProbability(word string) float64 {
	prob := 1.0
	if !m.transitionsOf(word, func(p float64) { prob *= p }) {
		return m.opts.FallbackProbability
	}
	return prob
}

// WordLogProbability is the natural log of WordProbability computed as a sum of logs.
func (m *Model) WordLogProbability(word string) float64 {
	logProb := 0.0
	if !m.transitionsOf(word, func(p float64) { logProb += math.Log(p) }) {
		return math.Log(m.opts.FallbackProbability)
	}
	return logProb
}

// transitionsOf calls fn with each transition probability of the padded word.
// It stops and returns false at the first unseen context or transition.
func (m *Model) transitionsOf(word string, fn func(p float64)) bool {
	n := m.opts.N
	padded := m.pad + word + m.pad
	for pos := 0; pos+n <= len(padded); pos++ {
		dist, ok := m.table[padded[pos:pos+n-1]]
		if !ok {
			return false
		}
		count := dist.counts[padded[pos+n-1]]
		if count == 0 {
			return false
		}
		fn(float64(count) / float64(dist.total))
	}
	return true
}
