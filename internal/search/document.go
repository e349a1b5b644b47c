package search

import (
	"regexp"
)

// Document is a comparable item: an identifier plus its raw text.
// Content is empty when the document could not be read.
type Document struct {
	ID      string
	Content string
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z\-']+`)

// Tokenize splits text into word tokens (letters, hyphens and apostrophes).
// Tokens keep their original case.
func Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
