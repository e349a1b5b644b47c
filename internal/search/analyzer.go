package search

import (
	"strings"
)

// Analyzer turns tokens into stems. It holds a frozen stop word set and a
// stemmer, and is safe for concurrent use.
type Analyzer struct {
	stopWords StopWords
	stemmer   Stemmer
}

func NewAnalyzer(stopWords StopWords, stemmer Stemmer) *Analyzer {
	if stemmer == nil {
		stemmer = SnowballStemmer{}
	}
	return &Analyzer{
		stopWords: stopWords,
		stemmer:   stemmer,
	}
}

// IsStopWord reports whether word is in the stop word set.
func (a *Analyzer) IsStopWord(word string) bool {
	return a.stopWords.Contains(word)
}

// Stem lowercases word and stems it.
func (a *Analyzer) Stem(word string) string {
	return a.stemmer.Stem(strings.ToLower(word))
}

// Terms returns the stems of tokens, in order, with stop words removed.
func (a *Analyzer) Terms(tokens []string) []string {
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		word := strings.ToLower(token)
		if a.stopWords.Contains(word) {
			continue
		}
		terms = append(terms, a.stemmer.Stem(word))
	}
	return terms
}

func (a *Analyzer) StemmerName() string {
	return a.stemmer.Name()
}
