// Package stem reduces words to their Snowball stems.
package stem

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/tokenize"
	"github.com/kljensen/snowball"
)

var algorithms = map[string]string{
	"en": "english", "english": "english",
	"fr": "french", "french": "french",
	"es": "spanish", "spanish": "spanish",
	"ru": "russian", "russian": "russian",
	"sv": "swedish", "swedish": "swedish",
	"no": "norwegian", "norwegian": "norwegian",
	"hu": "hungarian", "hungarian": "hungarian",
}

// Languages returns the accepted language codes and names, sorted.
func Languages() []string {
	langs := make([]string, 0, len(algorithms))
	for l := range algorithms {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// Stemmer stems words of one language.
type Stemmer struct {
	algorithm string
}

// New returns a stemmer for lang, given as an ISO 639-1 code or a Snowball
// algorithm name. Unknown languages are reported as ErrInvalidParams.
func New(lang string) (*Stemmer, error) {
	algorithm, ok := algorithms[strings.ToLower(lang)]
	if !ok {
		return nil, fmt.Errorf("stem: %w: unsupported language %q", textvec.ErrInvalidParams, lang)
	}
	return &Stemmer{algorithm: algorithm}, nil
}

// Algorithm returns the Snowball algorithm name.
func (s *Stemmer) Algorithm() string {
	return s.algorithm
}

// Stem returns the lowercased stem of word.
func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(strings.ToLower(word), s.algorithm, true)
	if err != nil {
		// only reachable for an unknown algorithm, which New rules out
		return word
	}
	return stemmed
}

// Tokenizer stems every token produced by another tokenizer.
type Tokenizer struct {
	base    tokenize.Tokenizer
	stemmer *Stemmer
}

// NewTokenizer wraps base.
func NewTokenizer(base tokenize.Tokenizer, s *Stemmer) *Tokenizer {
	return &Tokenizer{base: base, stemmer: s}
}

func (t *Tokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range t.base.Tokenize(text) {
			if !yield(t.stemmer.Stem(tok)) {
				return
			}
		}
	}
}
