package tokenize

import (
	"iter"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// UnicodeSentenceTokenizer splits text on Unicode sentence boundaries
// (UAX#29). Trailing whitespace stays with its sentence, so the pieces
// concatenate back to the input.
type UnicodeSentenceTokenizer struct{}

// NewUnicodeSentenceTokenizer returns a UAX#29 sentence tokenizer.
func NewUnicodeSentenceTokenizer() *UnicodeSentenceTokenizer {
	return &UnicodeSentenceTokenizer{}
}

func (t *UnicodeSentenceTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seg := sentences.FromString(text)
		for seg.Next() {
			if !yield(seg.Value()) {
				return
			}
		}
	}
}

// PunctuationSentenceTokenizer splits text after sentence-ending
// punctuation. Whitespace following the punctuation stays with the sentence,
// so the pieces concatenate back to the input.
type PunctuationSentenceTokenizer struct {
	// Punctuation lists the runes that end a sentence.
	Punctuation string `json:"punctuation"`
	// Whitespace lists the runes that may trail a sentence end.
	Whitespace string `json:"whitespace"`
}

// NewPunctuationSentenceTokenizer splits on ".", "!" and "?".
func NewPunctuationSentenceTokenizer() *PunctuationSentenceTokenizer {
	return &PunctuationSentenceTokenizer{
		Punctuation: ".!?",
		Whitespace:  " \t\n\r\v\f",
	}
}

func (t *PunctuationSentenceTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		seen := false
		for i, r := range text {
			if seen {
				if strings.ContainsRune(t.Whitespace, r) {
					continue
				}
				if !yield(text[start:i]) {
					return
				}
				start = i
				seen = false
			}
			if strings.ContainsRune(t.Punctuation, r) {
				seen = true
			}
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}
