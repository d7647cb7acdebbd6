package ngram

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// addWord records a training word. The empty word is counted but kept out of the trie.
func (m *Model) addWord(word string) {
	m.vocab[word]++
	if word == "" {
		return
	}
	m.index.Set(patricia.Prefix(word), m.vocab[word])
}

// Vocabulary returns the distinct training words in lexical order.
func (m *Model) Vocabulary() []string {
	words := make([]string, 0, len(m.vocab))
	for w := range m.vocab {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// HasWord reports whether word occurred in the cleaned corpus.
func (m *Model) HasWord(word string) bool {
	_, ok := m.vocab[word]
	return ok
}

// WordCount returns how many times word occurred in the cleaned corpus.
func (m *Model) WordCount(word string) int {
	return m.vocab[word]
}

type wordCount struct {
	word  string
	count int
}

// WordsWithPrefix lists training words starting with prefix, most frequent first.
// A limit <= 0 returns every match.
func (m *Model) WordsWithPrefix(prefix string, limit int) []string {
	var matches []wordCount
	visit := func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		matches = append(matches, wordCount{word: string(p), count: count})
		return nil
	}

	var err error
	if prefix == "" {
		err = m.index.Visit(visit)
	} else {
		err = m.index.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting vocabulary trie: %v", err)
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].count != matches[j].count {
			return matches[i].count > matches[j].count
		}
		return matches[i].word < matches[j].word
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	words := make([]string, len(matches))
	for i, wc := range matches {
		words[i] = wc.word
	}
	return words
}
