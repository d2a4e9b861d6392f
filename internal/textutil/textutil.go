// Package textutil provides small string helpers shared by the corpus
// loader and the metrics.
package textutil

import (
	"regexp"
	"strings"
)

// Ngrams returns the minN to maxN rune n-grams of s, shortest first. The
// n-grams are substrings of s.
func Ngrams(s string, minN, maxN int) []string {
	// byte offset of every rune, plus the end of s
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	textLen := len(offsets)
	offsets = append(offsets, len(s))

	var res []string
	for n := max(minN, 1); n <= maxN && n <= textLen; n++ {
		for i := 0; i <= textLen-n; i++ {
			res = append(res, s[offsets[i]:offsets[i+n]])
		}
	}
	return res
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// IsBlank reports whether text holds nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
