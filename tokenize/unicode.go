package tokenize

import (
	"iter"

	"github.com/blevesearch/segment"
)

// UnicodeWordTokenizer splits text on Unicode word boundaries (UAX#29).
//
// With WordBounds set, punctuation and symbol segments are kept as tokens of
// their own; otherwise only segments holding letters or digits are emitted.
// Whitespace is always dropped.
type UnicodeWordTokenizer struct {
	WordBounds bool `json:"word_bounds"`
}

// NewUnicodeWordTokenizer returns a tokenizer with the given boundary mode.
func NewUnicodeWordTokenizer(wordBounds bool) *UnicodeWordTokenizer {
	return &UnicodeWordTokenizer{WordBounds: wordBounds}
}

func (t *UnicodeWordTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range segments(text) {
			tok := text[s.start:s.end]
			if isSpace(tok) {
				continue
			}
			if !t.WordBounds && s.typ == segment.None {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}
