package tokenize

import (
	"fmt"
	"iter"
	"regexp"

	"github.com/happyhackingspace/textvec"
)

// DefaultPattern keeps words of two or more characters in any script.
// Marks are part of the word so decomposed accents stay attached.
const DefaultPattern = `[\p{L}\p{M}\p{N}_]{2,}`

// UnicodePattern matches runs of letters, digits and underscores in any script.
const UnicodePattern = `[\p{L}\p{N}_]+`

// RegexpTokenizer emits every non-empty match of a regular expression.
type RegexpTokenizer struct {
	re *regexp.Regexp
}

// NewRegexpTokenizer compiles pattern. A malformed pattern is reported as
// ErrInvalidParams.
func NewRegexpTokenizer(pattern string) (*RegexpTokenizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w: %v", textvec.ErrInvalidParams, err)
	}
	return &RegexpTokenizer{re: re}, nil
}

// NewDefaultRegexpTokenizer returns a tokenizer for DefaultPattern.
func NewDefaultRegexpTokenizer() *RegexpTokenizer {
	return &RegexpTokenizer{re: regexp.MustCompile(DefaultPattern)}
}

// Pattern returns the source of the compiled expression.
func (t *RegexpTokenizer) Pattern() string {
	return t.re.String()
}

func (t *RegexpTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, loc := range t.re.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			if !yield(text[loc[0]:loc[1]]) {
				return
			}
		}
	}
}
