package storage

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractText returns the visible text of an HTML document, skipping
// script and style contents.
func extractText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return cleanText(textBuilder.String()), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			}

		case html.EndTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			}

		case html.TextToken:
			if !inScript && !inStyle {
				text := strings.TrimSpace(tokenizer.Token().Data)
				if text != "" {
					textBuilder.WriteString(text + " ")
				}
			}
		}
	}
}

// cleanText removes excessive whitespace
func cleanText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
