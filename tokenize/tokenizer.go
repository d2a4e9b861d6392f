// Package tokenize splits raw text into lazy token streams.
//
// Every tokenizer returns tokens as substrings of the input text, so no token
// is copied, and every call to Tokenize starts an independent stream.
package tokenize

import "iter"

// Tokenizer turns a document into a stream of tokens.
type Tokenizer interface {
	Tokenize(text string) iter.Seq[string]
}

// Func adapts an ordinary function to the Tokenizer interface.
type Func func(text string) iter.Seq[string]

// Tokenize calls f(text).
func (f Func) Tokenize(text string) iter.Seq[string] {
	return f(text)
}
