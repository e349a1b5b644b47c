package search

import (
	"fmt"

	"github.com/kljensen/snowball/english"
	"github.com/surgebase/porter2"
)

// Stemmer reduces a lowercase word to its stem. Implementations must be
// deterministic and free of side effects.
type Stemmer interface {
	Stem(word string) string
	Name() string
}

// SnowballStemmer uses the Snowball English algorithm.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(word string) string {
	// Stop word filtering happens in the Analyzer against our own list.
	return english.Stem(word, true)
}

func (SnowballStemmer) Name() string { return "snowball" }

// Porter2Stemmer uses the surgebase Porter2 implementation.
type Porter2Stemmer struct{}

func (Porter2Stemmer) Stem(word string) string {
	return porter2.Stem(word)
}

func (Porter2Stemmer) Name() string { return "porter2" }

// NewStemmer returns the stemmer registered under name.
// An empty name selects snowball.
func NewStemmer(name string) (Stemmer, error) {
	switch name {
	case "", "snowball":
		return SnowballStemmer{}, nil
	case "porter2":
		return Porter2Stemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown stemmer %q", name)
	}
}
