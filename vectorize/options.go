package vectorize

import (
	"github.com/happyhackingspace/textvec/ngram"
)

// WindowPolicy decides how repeated n-gram windows of one document count.
type WindowPolicy int

const (
	// SumWindows counts every emitted window, like any repeated token.
	SumWindows WindowPolicy = iota
	// UniqueWindows counts each distinct window at most once per document.
	UniqueWindows
)

func (p WindowPolicy) String() string {
	switch p {
	case SumWindows:
		return "sum"
	case UniqueWindows:
		return "unique"
	}
	return "unknown"
}

// DefaultFeatures is the default width of the hashing space.
const DefaultFeatures = 1 << 20

type config struct {
	lowercase  bool
	jobs       int
	grams      *ngram.KSkipNGrams
	padLeft    *string
	padRight   *string
	policy     WindowPolicy
	vocabulary map[string]int
	features   int
}

func defaultConfig() config {
	return config{
		lowercase: true,
		jobs:      1,
		policy:    SumWindows,
		features:  DefaultFeatures,
	}
}

// Option configures a vectorizer.
type Option func(*config)

// WithLowercase toggles lowercasing of documents before tokenization.
// Enabled by default.
func WithLowercase(on bool) Option {
	return func(c *config) { c.lowercase = on }
}

// WithJobs sets the number of workers processing document chunks.
func WithJobs(n int) Option {
	return func(c *config) { c.jobs = n }
}

// WithNGrams expands every token stream into k-skip-n-grams. The tokens of a
// gram are joined with a single space to form the feature.
func WithNGrams(g ngram.KSkipNGrams) Option {
	return func(c *config) { c.grams = &g }
}

// WithPadLeft pads n-gram windows at the start of every document with tok.
// Any string is a valid pad token, the empty string included.
func WithPadLeft(tok string) Option {
	return func(c *config) { c.padLeft = &tok }
}

// WithPadRight pads n-gram windows at the end of every document with tok.
func WithPadRight(tok string) Option {
	return func(c *config) { c.padRight = &tok }
}

// WithPadding pads n-gram windows at both document boundaries. An empty
// string disables padding on that side; use WithPadLeft or WithPadRight to
// pad with the empty string.
func WithPadding(left, right string) Option {
	return func(c *config) {
		c.padLeft, c.padRight = nil, nil
		if left != "" {
			c.padLeft = &left
		}
		if right != "" {
			c.padRight = &right
		}
	}
}

// WithWindowPolicy sets how repeated n-gram windows are counted.
func WithWindowPolicy(p WindowPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithVocabulary starts a CountVectorizer from a fixed vocabulary, so that
// Transform can run without Fit. Ids must be exactly 0..len(vocab)-1.
func WithVocabulary(vocab map[string]int) Option {
	return func(c *config) { c.vocabulary = vocab }
}

// WithFeatures sets the width of the HashingVectorizer output.
func WithFeatures(n int) Option {
	return func(c *config) { c.features = n }
}
