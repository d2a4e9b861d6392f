// Package ngram expands token streams into k-skip-n-grams.
//
// A k-skip-n-gram is a sequence of n tokens taken in order from the input,
// allowing at most k positions in total to be skipped between them. Plain
// n-grams (k=0), everygrams (a range of n) and skip-grams are all special
// cases:
//
//	it, _ := ngram.NewSkipgrams(2, 1).Transform(slices.Values(tokens),
//		ngram.WithPadLeft("<s>"), ngram.WithPadRight("</s>"))
//	for gram := range it.All() {
//		fmt.Println(gram)
//	}
//
// The iterator consumes the input only once and keeps a sliding window of
// MaxN+MaxK tokens. Tokens are never copied: every emitted gram holds the
// same strings the input stream produced.
package ngram

import (
	"fmt"
	"iter"

	"github.com/happyhackingspace/textvec"
)

// KSkipNGrams holds the gram parameters. Use the constructors for the common
// shapes or fill the struct directly.
type KSkipNGrams struct {
	MinN int `json:"min_n"`
	MaxN int `json:"max_n"`
	MaxK int `json:"max_k"`
}

// New returns k-skip-n-gram parameters for lengths minN..maxN with up to maxK
// skipped positions.
func New(minN, maxN, maxK int) KSkipNGrams {
	return KSkipNGrams{MinN: minN, MaxN: maxN, MaxK: maxK}
}

// NewBigram returns parameters for plain bigrams.
func NewBigram() KSkipNGrams { return New(2, 2, 0) }

// NewTrigram returns parameters for plain trigrams.
func NewTrigram() KSkipNGrams { return New(3, 3, 0) }

// NewNGrams returns parameters for plain n-grams.
func NewNGrams(n int) KSkipNGrams { return New(n, n, 0) }

// NewEverygrams returns parameters for every n-gram with minN <= n <= maxN.
func NewEverygrams(minN, maxN int) KSkipNGrams { return New(minN, maxN, 0) }

// NewSkipgrams returns parameters for n-grams with a total skip of at most k.
func NewSkipgrams(n, k int) KSkipNGrams { return New(n, n, k) }

// Validate reports whether the parameters describe a usable generator.
func (g KSkipNGrams) Validate() error {
	if g.MinN < 1 {
		return fmt.Errorf("ngram: %w: min_n must be >= 1, got %d", textvec.ErrInvalidParams, g.MinN)
	}
	if g.MinN > g.MaxN {
		return fmt.Errorf("ngram: %w: min_n (%d) must be <= max_n (%d)", textvec.ErrInvalidParams, g.MinN, g.MaxN)
	}
	if g.MaxK < 0 {
		return fmt.Errorf("ngram: %w: max_k must be >= 0, got %d", textvec.ErrInvalidParams, g.MaxK)
	}
	return nil
}

// Option configures padding for Transform.
type Option func(*Iter)

// WithPadLeft emits boundary grams at the start of the stream, filled with tok.
func WithPadLeft(tok string) Option {
	return func(it *Iter) {
		it.padLeft = tok
		it.hasPadLeft = true
	}
}

// WithPadRight emits boundary grams at the end of the stream, filled with tok.
func WithPadRight(tok string) Option {
	return func(it *Iter) {
		it.padRight = tok
		it.hasPadRight = true
	}
}

// Transform starts iterating k-skip-n-grams over items. It fails with
// ErrInvalidParams for bad parameters and with ErrInvalidInput when items
// yields fewer than MaxN+MaxK tokens.
//
// The returned iterator holds the input open until it is exhausted or Close
// is called.
func (g KSkipNGrams) Transform(items iter.Seq[string], opts ...Option) (*Iter, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	maxK := g.MaxK
	if g.MaxN == 1 {
		// skipping has no effect on unigrams
		maxK = 0
	}

	it := &Iter{
		minN: g.MinN,
		maxN: g.MaxN,
		maxK: maxK,
		mode: modeStart,
	}
	for _, opt := range opts {
		opt(it)
	}

	it.pull, it.stop = iter.Pull(items)
	if err := it.fillWindow(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

type mode int

const (
	modeStart mode = iota
	modePadLeft
	modeMain
	modeMainEnd
	modePadRight
	modeDone
)

// Iter is a pull iterator over k-skip-n-grams. It walks through five phases,
// each exhausted before the next starts:
//
//	start     -> pad-left
//	pad-left  boundary grams prefixed with the left pad token
//	main      grams anchored at window position 0, window advanced per token
//	main-end  grams from the shrinking tail once the input is exhausted
//	pad-right boundary grams suffixed with the right pad token
type Iter struct {
	pull func() (string, bool)
	stop func()

	minN, maxN, maxK int
	padLeft          string
	padRight         string
	hasPadLeft       bool
	hasPadRight      bool

	window []string
	n      int // gram length of the current combinations
	p      int // amount of padding
	offset int // start of the shrunk window in main-end
	combos *sampleCombinations
	mode   mode
	first  bool
}

func (it *Iter) fillWindow() error {
	size := it.maxN + it.maxK
	it.window = make([]string, 0, size)
	for len(it.window) < size {
		tok, ok := it.pull()
		if !ok {
			return fmt.Errorf("ngram: %w: got %d items, need at least max_n+max_k = %d",
				textvec.ErrInvalidInput, len(it.window), size)
		}
		it.window = append(it.window, tok)
	}
	return nil
}

// Close releases the underlying token stream. It is safe to call more than
// once and is called automatically when the iterator is exhausted.
func (it *Iter) Close() {
	if it.stop != nil {
		it.stop()
		it.stop = nil
	}
	it.mode = modeDone
}

// Next returns the next gram. The slice is freshly allocated and owned by the
// caller.
func (it *Iter) Next() ([]string, bool) {
	for {
		switch it.mode {
		case modeStart:
			it.enter(modePadLeft)

		case modePadLeft:
			if !it.hasPadLeft || it.maxN <= 1 {
				it.enter(modeMain)
				continue
			}
			if idx, ok := it.nextPadLeft(); ok {
				gram := make([]string, 0, it.n)
				for range it.p {
					gram = append(gram, it.padLeft)
				}
				for _, i := range idx {
					gram = append(gram, it.window[i])
				}
				return gram, true
			}
			it.enter(modeMain)

		case modeMain:
			if idx, ok := it.nextMain(); ok {
				gram := make([]string, len(idx))
				for j, i := range idx {
					gram[j] = it.window[i]
				}
				return gram, true
			}
			it.enter(modeMainEnd)

		case modeMainEnd:
			if (it.minN == it.maxN && it.maxK == 0) || len(it.window) <= 1 {
				it.enter(modePadRight)
				continue
			}
			if idx, ok := it.nextMainEnd(); ok {
				gram := make([]string, len(idx))
				for j, i := range idx {
					gram[j] = it.window[i+it.offset]
				}
				return gram, true
			}
			it.enter(modePadRight)

		case modePadRight:
			if !it.hasPadRight || it.maxN <= 1 {
				it.Close()
				continue
			}
			if idx, ok := it.nextPadRight(); ok {
				last := len(it.window) - 1
				gram := make([]string, 0, it.n)
				for j := len(idx) - 1; j >= 0; j-- {
					gram = append(gram, it.window[last-idx[j]])
				}
				for range it.p {
					gram = append(gram, it.padRight)
				}
				return gram, true
			}
			it.Close()

		default:
			return nil, false
		}
	}
}

// All adapts the iterator to a range-over-func sequence.
func (it *Iter) All() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		defer it.Close()
		for {
			gram, ok := it.Next()
			if !ok || !yield(gram) {
				return
			}
		}
	}
}

// Collect drains the iterator.
func (it *Iter) Collect() [][]string {
	var grams [][]string
	for gram := range it.All() {
		grams = append(grams, gram)
	}
	return grams
}

func (it *Iter) enter(m mode) {
	it.mode = m
	it.first = true
}

// nextPadLeft walks
//
//	for n := max(minN, 2); n <= maxN; n++
//	    for p := n-1; p >= 1; p--
//	        combinations of n-p window items
func (it *Iter) nextPadLeft() ([]int, bool) {
	if it.first {
		it.first = false
		it.n = max(it.minN, 2)
		it.p = it.n - 1
		it.resetPadCombos()
	}
	for {
		if idx, ok := it.combos.next(); ok {
			return idx, true
		}
		switch {
		case it.p > 1:
			it.p--
		case it.n < it.maxN:
			it.n++
			it.p = it.n - 1
		default:
			return nil, false
		}
		it.resetPadCombos()
	}
}

// nextPadRight walks the same space as nextPadLeft with p increasing.
func (it *Iter) nextPadRight() ([]int, bool) {
	if it.first {
		it.first = false
		it.n = max(it.minN, 2)
		it.p = 1
		it.resetPadCombos()
	}
	for {
		if idx, ok := it.combos.next(); ok {
			return idx, true
		}
		switch {
		case it.p < it.n-1:
			it.p++
		case it.n < it.maxN:
			it.n++
			it.p = 1
		default:
			return nil, false
		}
		it.resetPadCombos()
	}
}

func (it *Iter) resetPadCombos() {
	it.combos = mustSampleCombinations(false, it.n+it.maxK-it.p-1, it.n-it.p)
}

// nextMain walks, for every window position,
//
//	for n := minN; n <= min(maxN, len(window)); n++
//	    combinations anchored at 0
//
// and advances the window by one token once all lengths are exhausted.
func (it *Iter) nextMain() ([]int, bool) {
	if it.first {
		it.first = false
		it.n = it.minN
		it.resetMainCombos()
	}
	for {
		if idx, ok := it.combos.next(); ok {
			return idx, true
		}
		if it.n < min(it.maxN, len(it.window)) {
			it.n++
			it.resetMainCombos()
			continue
		}
		if !it.forward() {
			return nil, false
		}
		it.n = it.minN
		it.resetMainCombos()
	}
}

func (it *Iter) resetMainCombos() {
	it.combos = mustSampleCombinations(true, it.n+it.maxK-1, it.n)
}

func (it *Iter) forward() bool {
	if it.stop == nil {
		return false
	}
	tok, ok := it.pull()
	if !ok {
		it.stop()
		it.stop = nil
		return false
	}
	copy(it.window, it.window[1:])
	it.window[len(it.window)-1] = tok
	return true
}

// nextMainEnd emits the grams the main phase could not reach because the
// window can no longer advance:
//
//	for offset := 1; len(window)-offset >= minN; offset++
//	    for n := minN; n <= min(maxN, len(window)-offset); n++
//	        combinations anchored at offset, skip budget re-derived
func (it *Iter) nextMainEnd() ([]int, bool) {
	if it.first {
		it.first = false
		it.n = it.minN
		it.offset = 1
		it.resetMainEndCombos()
	}
	for {
		if idx, ok := it.combos.next(); ok {
			return idx, true
		}
		switch {
		case it.n < min(it.maxN, len(it.window)-it.offset):
			it.n++
		case len(it.window)-it.offset > it.minN:
			it.offset++
			it.n = it.minN
		default:
			return nil, false
		}
		it.resetMainEndCombos()
	}
}

func (it *Iter) resetMainEndCombos() {
	windowLen := len(it.window) - it.offset
	k := 0
	if windowLen > it.n {
		k = min(it.maxK, windowLen-it.n)
	}
	it.combos = mustSampleCombinations(true, it.n+k-1, it.n)
}
