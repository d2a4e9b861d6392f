package vectorize

import (
	"fmt"
	"iter"
	"strings"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/ngram"
	"github.com/happyhackingspace/textvec/tokenize"
)

// analyzer turns one document into its features: lowercase, tokenize and
// optionally expand into k-skip-n-grams.
type analyzer struct {
	tok       tokenize.Tokenizer
	lowercase bool
	grams     *ngram.KSkipNGrams
	gramOpts  []ngram.Option
	policy    WindowPolicy
}

func newAnalyzer(tok tokenize.Tokenizer, c config) (analyzer, error) {
	if tok == nil {
		return analyzer{}, fmt.Errorf("vectorize: %w: nil tokenizer", textvec.ErrInvalidParams)
	}
	if c.jobs < 1 {
		return analyzer{}, fmt.Errorf("vectorize: %w: n_jobs must be >= 1, got %d", textvec.ErrInvalidParams, c.jobs)
	}
	if c.policy != SumWindows && c.policy != UniqueWindows {
		return analyzer{}, fmt.Errorf("vectorize: %w: unknown window policy %d", textvec.ErrInvalidParams, c.policy)
	}
	a := analyzer{tok: tok, lowercase: c.lowercase, grams: c.grams, policy: c.policy}
	if c.grams != nil {
		if err := c.grams.Validate(); err != nil {
			return analyzer{}, err
		}
		if c.padLeft != nil {
			a.gramOpts = append(a.gramOpts, ngram.WithPadLeft(*c.padLeft))
		}
		if c.padRight != nil {
			a.gramOpts = append(a.gramOpts, ngram.WithPadRight(*c.padRight))
		}
	}
	return a, nil
}

// analyze calls emit for every feature of doc. Features may share memory
// with doc; emit must copy them before retaining them.
func (a analyzer) analyze(doc string, emit func(feature string)) error {
	if a.lowercase {
		doc = strings.ToLower(doc)
	}
	tokens := a.tok.Tokenize(doc)
	if a.grams == nil {
		for tok := range tokens {
			emit(tok)
		}
		return nil
	}

	// peek at the first token so an empty document yields an empty row
	next, stop := iter.Pull(tokens)
	defer stop()
	first, ok := next()
	if !ok {
		return nil
	}
	items := func(yield func(string) bool) {
		if !yield(first) {
			return
		}
		for {
			tok, ok := next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
	it, err := a.grams.Transform(items, a.gramOpts...)
	if err != nil {
		return err
	}
	var seen map[string]struct{}
	if a.policy == UniqueWindows {
		seen = make(map[string]struct{})
	}
	for gram := range it.All() {
		feature := strings.Join(gram, " ")
		if seen != nil {
			if _, dup := seen[feature]; dup {
				continue
			}
			seen[feature] = struct{}{}
		}
		emit(feature)
	}
	return nil
}

// docError attaches the position of the failing document.
func docError(i int, err error) error {
	return fmt.Errorf("vectorize: document %d: %w", i, err)
}
