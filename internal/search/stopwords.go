package search

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stop_words.txt
var defaultStopWords string

// StopWords is a read-only set of lowercase words excluded from comparison.
// It is never modified after loading, so one value can be shared freely.
type StopWords struct {
	words map[string]struct{}
}

// LoadStopWords reads one word per line. Entries are trimmed and lowercased;
// blank lines are skipped.
func LoadStopWords(r io.Reader) (StopWords, error) {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return StopWords{}, fmt.Errorf("failed to read stop words: %w", err)
	}
	return StopWords{words: words}, nil
}

// LoadStopWordsFile loads the stop word list at path.
func LoadStopWordsFile(path string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return StopWords{}, fmt.Errorf("failed to open stop words file: %w", err)
	}
	defer f.Close()

	return LoadStopWords(f)
}

// DefaultStopWords returns the built-in English list.
func DefaultStopWords() StopWords {
	sw, _ := LoadStopWords(strings.NewReader(defaultStopWords))
	return sw
}

// Contains reports whether word is a stop word, ignoring case.
func (s StopWords) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of stop words.
func (s StopWords) Len() int {
	return len(s.words)
}
