// Package metrics measures the similarity of short strings.
//
// All measures compare runes, not bytes.
package metrics

import (
	"unicode/utf8"

	"github.com/happyhackingspace/textvec/internal/textutil"
	"github.com/xrash/smetrics"
)

// DiceSimilarity returns the Sørensen-Dice coefficient of the character
// bigram sets of x and y:
//
//	2 * |X ∩ Y| / (|X| + |Y|)
//
// Strings shorter than two runes have no bigrams and score 0.
func DiceSimilarity(x, y string) float64 {
	if utf8.RuneCountInString(x) < 2 || utf8.RuneCountInString(y) < 2 {
		return 0
	}
	if x == y {
		return 1
	}
	xs := bigrams(x)
	ys := bigrams(y)
	common := 0
	for g := range xs {
		if _, ok := ys[g]; ok {
			common++
		}
	}
	return float64(2*common) / float64(len(xs)+len(ys))
}

func bigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range textutil.Ngrams(s, 2, 2) {
		set[g] = struct{}{}
	}
	return set
}

// JaroSimilarity returns the Jaro similarity of x and y, between 0 and 1.
// Empty strings share nothing and score 0.
func JaroSimilarity(x, y string) float64 {
	if x == "" || y == "" {
		return 0
	}
	x, y = runeCodes(x, y)
	return smetrics.Jaro(x, y)
}

// Jaro-Winkler boosts scores above this threshold by the common prefix, up
// to prefixSize bytes.
const (
	boostThreshold = 0.7
	prefixSize     = 4
)

// JaroWinklerSimilarity returns the Jaro similarity boosted for strings
// sharing a prefix.
func JaroWinklerSimilarity(x, y string) float64 {
	if x == "" || y == "" {
		return 0
	}
	x, y = runeCodes(x, y)
	return smetrics.JaroWinkler(x, y, boostThreshold, prefixSize)
}

// EditDistance returns the Levenshtein distance of x and y with unit costs.
func EditDistance(x, y string) int {
	x, y = runeCodes(x, y)
	return smetrics.WagnerFischer(x, y, 1, 1, 1)
}

// runeCodes rewrites x and y with one byte per rune, so that measures
// indexing strings by byte see whole runes. The byte codes are assigned per
// call and only preserve rune equality. Pure ASCII input is returned as is,
// and so is input with more than 256 distinct runes, which then compares
// UTF-8 bytes.
func runeCodes(x, y string) (string, string) {
	if isASCII(x) && isASCII(y) {
		return x, y
	}
	codes := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			c, ok := codes[r]
			if !ok {
				if len(codes) == 256 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}
	xc, ok := encode(x)
	if !ok {
		return x, y
	}
	yc, ok := encode(y)
	if !ok {
		return x, y
	}
	return string(xc), string(yc)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
