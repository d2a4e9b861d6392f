package tokenize

import (
	"fmt"
	"iter"

	"github.com/happyhackingspace/textvec"
)

// DefaultWindow is the character window used by the CLI.
const DefaultWindow = 4

// CharacterTokenizer emits every run of Window consecutive runes. Text
// shorter than the window is emitted whole.
type CharacterTokenizer struct {
	Window int `json:"window"`
}

// NewCharacterTokenizer returns a tokenizer over windows of the given size.
func NewCharacterTokenizer(window int) (*CharacterTokenizer, error) {
	if window < 1 {
		return nil, fmt.Errorf("tokenize: %w: window must be >= 1, got %d", textvec.ErrInvalidParams, window)
	}
	return &CharacterTokenizer{Window: window}, nil
}

func (t *CharacterTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		// byte offsets of the runes in the current window
		starts := make([]int, 0, t.Window+1)
		for i := range text {
			starts = append(starts, i)
			if len(starts) > t.Window {
				if !yield(text[starts[0]:i]) {
					return
				}
				starts = append(starts[:0], starts[1:]...)
			}
		}
		yield(text[starts[0]:])
	}
}
