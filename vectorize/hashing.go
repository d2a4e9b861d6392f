package vectorize

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/internal/workpool"
	"github.com/happyhackingspace/textvec/tokenize"
	"github.com/zeebo/xxh3"
)

// hashSeed is fixed so that buckets are stable across calls and processes.
const hashSeed uint64 = 0x1_03E8_00C8_0059

// HashingVectorizer maps features straight to columns with a seeded hash,
// without keeping a vocabulary. Colliding features share a column and their
// counts add up.
type HashingVectorizer struct {
	analyzer
	jobs     int
	features int
}

// NewHashingVectorizer returns a stateless vectorizer using tok.
func NewHashingVectorizer(tok tokenize.Tokenizer, opts ...Option) (*HashingVectorizer, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.features < 1 {
		return nil, fmt.Errorf("vectorize: %w: n_features must be >= 1, got %d", textvec.ErrInvalidParams, c.features)
	}
	if c.vocabulary != nil {
		return nil, fmt.Errorf("vectorize: %w: hashing vectorizer takes no vocabulary", textvec.ErrInvalidParams)
	}
	a, err := newAnalyzer(tok, c)
	if err != nil {
		return nil, err
	}
	return &HashingVectorizer{analyzer: a, jobs: c.jobs, features: c.features}, nil
}

// Features returns the number of output columns.
func (hv *HashingVectorizer) Features() int {
	return hv.features
}

// Fit does nothing; there is nothing to learn.
func (hv *HashingVectorizer) Fit([]string) *HashingVectorizer {
	return hv
}

// Column returns the output column of a single feature.
func (hv *HashingVectorizer) Column(feature string) int {
	return int(xxh3.HashStringSeed(feature, hashSeed) % uint64(hv.features))
}

// Transform counts the hashed features of docs.
func (hv *HashingVectorizer) Transform(docs []string) (*CSR, error) {
	start := time.Now()
	chunks, err := workpool.Map(docs, hv.jobs, func(offset int, chunk []string) (*accumulator, error) {
		acc := newAccumulator()
		var ids []int
		for i, doc := range chunk {
			ids = ids[:0]
			err := hv.analyze(doc, func(f string) {
				ids = append(ids, hv.Column(f))
			})
			if err != nil {
				return nil, docError(offset+i, err)
			}
			acc.addRow(ids)
		}
		return acc, nil
	})
	if err != nil {
		return nil, err
	}

	acc := chunks[0]
	for _, c := range chunks[1:] {
		acc.extend(c, nil)
	}
	slog.Debug("Hashed documents", "documents", len(docs), "jobs", hv.jobs,
		"features", hv.features, "nnz", len(acc.indices), "duration", time.Since(start))
	return acc.matrix(hv.features), nil
}

// FitTransform is Transform.
func (hv *HashingVectorizer) FitTransform(docs []string) (*CSR, error) {
	return hv.Transform(docs)
}
