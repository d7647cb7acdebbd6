// Package suggest is the completion facade over a trained n-gram model. It handles
// capitalization, ranking, duplicate filtering and caching of predictions.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for a prefix, most probable first
	Complete(prefix string, limit int) []Suggestion

	// KnownWords returns up to limit corpus words starting with prefix, most frequent first
	KnownWords(prefix string, limit int) []Suggestion

	// Score returns the model probability of a complete word
	Score(word string) float64

	// LogScore returns the natural log of Score, computed without underflow
	LogScore(word string) float64

	// Stats returns statistics about the model and the completer
	Stats() map[string]int
}
