package vectorize

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/internal/workpool"
	"github.com/happyhackingspace/textvec/tokenize"
)

// CountVectorizer converts documents to a matrix of term counts over a
// learned vocabulary. Column ids are the lexicographic rank of each term.
//
// A CountVectorizer must not be used by several goroutines at once while
// Fit or FitTransform is running.
type CountVectorizer struct {
	analyzer
	jobs       int
	vocabulary map[string]int
}

// NewCountVectorizer returns a vectorizer using tok. It fails with
// ErrInvalidParams for bad options.
func NewCountVectorizer(tok tokenize.Tokenizer, opts ...Option) (*CountVectorizer, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	a, err := newAnalyzer(tok, c)
	if err != nil {
		return nil, err
	}
	cv := &CountVectorizer{analyzer: a, jobs: c.jobs, vocabulary: map[string]int{}}
	if c.vocabulary != nil {
		if err := checkVocabulary(c.vocabulary); err != nil {
			return nil, err
		}
		cv.vocabulary = maps.Clone(c.vocabulary)
	}
	return cv, nil
}

func checkVocabulary(vocab map[string]int) error {
	used := make([]bool, len(vocab))
	for term, id := range vocab {
		if id < 0 || id >= len(vocab) || used[id] {
			return fmt.Errorf("vectorize: %w: vocabulary id %d of %q is not a unique id in [0, %d)",
				textvec.ErrInvalidParams, id, term, len(vocab))
		}
		used[id] = true
	}
	return nil
}

// Fit learns the vocabulary of docs, replacing the current one. Terms are
// numbered in lexicographic order.
func (cv *CountVectorizer) Fit(docs []string) error {
	start := time.Now()
	sets, err := workpool.Map(docs, cv.jobs, func(offset int, chunk []string) (map[string]struct{}, error) {
		set := make(map[string]struct{})
		for i, doc := range chunk {
			err := cv.analyze(doc, func(f string) {
				if _, ok := set[f]; !ok {
					set[strings.Clone(f)] = struct{}{}
				}
			})
			if err != nil {
				return nil, docError(offset+i, err)
			}
		}
		return set, nil
	})
	if err != nil {
		return err
	}

	union := sets[0]
	for _, set := range sets[1:] {
		maps.Copy(union, set)
	}
	terms := slices.Sorted(maps.Keys(union))
	vocab := make(map[string]int, len(terms))
	for id, term := range terms {
		vocab[term] = id
	}
	cv.vocabulary = vocab

	slog.Debug("Fitted vocabulary", "documents", len(docs), "jobs", cv.jobs,
		"vocabulary", len(vocab), "duration", time.Since(start))
	return nil
}

// Transform counts the in-vocabulary features of docs. Unknown features are
// dropped. The matrix has one column per vocabulary entry.
func (cv *CountVectorizer) Transform(docs []string) (*CSR, error) {
	start := time.Now()
	vocab := cv.vocabulary
	chunks, err := workpool.Map(docs, cv.jobs, func(offset int, chunk []string) (*accumulator, error) {
		acc := newAccumulator()
		var ids []int
		for i, doc := range chunk {
			ids = ids[:0]
			err := cv.analyze(doc, func(f string) {
				if id, ok := vocab[f]; ok {
					ids = append(ids, id)
				}
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
	slog.Debug("Transformed documents", "documents", len(docs), "jobs", cv.jobs,
		"nnz", len(acc.indices), "duration", time.Since(start))
	return acc.matrix(len(vocab)), nil
}

// chunkVocab is the first-seen vocabulary of one chunk of documents.
type chunkVocab struct {
	ids   map[string]int
	terms []string
	acc   *accumulator
}

// FitTransform learns the vocabulary and counts features in a single
// tokenization pass. It is equivalent to Fit followed by Transform.
func (cv *CountVectorizer) FitTransform(docs []string) (*CSR, error) {
	start := time.Now()
	chunks, err := workpool.Map(docs, cv.jobs, func(offset int, chunk []string) (*chunkVocab, error) {
		local := &chunkVocab{ids: make(map[string]int), acc: newAccumulator()}
		var ids []int
		for i, doc := range chunk {
			ids = ids[:0]
			err := cv.analyze(doc, func(f string) {
				id, ok := local.ids[f]
				if !ok {
					id = len(local.terms)
					f = strings.Clone(f)
					local.ids[f] = id
					local.terms = append(local.terms, f)
				}
				ids = append(ids, id)
			})
			if err != nil {
				return nil, docError(offset+i, err)
			}
			local.acc.addRow(ids)
		}
		return local, nil
	})
	if err != nil {
		return nil, err
	}

	// Chunks are merged in document order, so global ids stay first-seen.
	vocab := chunks[0].ids
	acc := chunks[0].acc
	for _, c := range chunks[1:] {
		remap := make([]int, len(c.terms))
		for local, term := range c.terms {
			id, ok := vocab[term]
			if !ok {
				id = len(vocab)
				vocab[term] = id
			}
			remap[local] = id
		}
		acc.extend(c.acc, remap)
	}
	acc.sortFeatures(vocab)
	cv.vocabulary = vocab

	slog.Debug("Fitted and transformed documents", "documents", len(docs), "jobs", cv.jobs,
		"vocabulary", len(vocab), "nnz", len(acc.indices), "duration", time.Since(start))
	return acc.matrix(len(vocab)), nil
}

// VocabSize returns the number of learned features.
func (cv *CountVectorizer) VocabSize() int {
	return len(cv.vocabulary)
}

// Vocabulary returns a copy of the term to column id mapping.
func (cv *CountVectorizer) Vocabulary() map[string]int {
	return maps.Clone(cv.vocabulary)
}

// FeatureNames returns the terms ordered by column id.
func (cv *CountVectorizer) FeatureNames() []string {
	names := make([]string, len(cv.vocabulary))
	for term, id := range cv.vocabulary {
		names[id] = term
	}
	return names
}
