// Package textutil provides text processing utilities for review classification.
package textutil

import (
	"regexp"
	"strings"
)

// punctuation is the ASCII punctuation set, matching Python's string.punctuation.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenize splits text into whitespace-delimited tokens.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// IsPunctuation reports whether the token consists entirely of punctuation
// characters. The empty string is not punctuation.
func IsPunctuation(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(punctuation, r) {
			return false
		}
	}
	return true
}

var (
	sentencePunctRe = regexp.MustCompile(`([.,!?])`)
	nonLetterRe     = regexp.MustCompile(`[^a-zA-Z.,!?]+`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
)

// CleanReview lowercases raw review text, pads sentence punctuation with
// spaces so it tokenizes separately, and squashes every other non-letter run
// to a single space.
func CleanReview(text string) string {
	text = strings.ToLower(text)
	text = sentencePunctRe.ReplaceAllString(text, " $1 ")
	text = nonLetterRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
}
