// Package search ranks historical repair cases against a free-text symptom
// query and derives a price range from the best matches.
package search

import "regexp"

// separatorPattern splits queries on whitespace (including the ideographic
// space) and the punctuation , 、 。 . / -.
var separatorPattern = regexp.MustCompile(`[\s\p{Z},、。./\-]+`)

// Tokenize splits a query into non-empty keyword tokens. Tokens keep their
// input case; folding happens at match time.
func Tokenize(query string) []string {
	parts := separatorPattern.Split(query, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
