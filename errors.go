// Package textvec turns raw text into sparse document-term matrices.
//
// The work is split across a few packages:
//
//	tokenize   pluggable tokenizers producing lazy token streams
//	ngram      k-skip-n-gram windows over a token stream
//	vectorize  count and hashing vectorizers producing CSR matrices
//	stem       Snowball stemming
//	metrics    string similarity measures
//
// A minimal pipeline:
//
//	tok := tokenize.NewDefaultRegexpTokenizer()
//	cv, _ := vectorize.NewCountVectorizer(tok)
//	m, _ := cv.FitTransform([]string{"the moon in the sky", "The sky is blue"})
//	fmt.Println(m.Indptr, m.Indices, m.Data)
//
// All packages report configuration problems with ErrInvalidParams and
// data that is too short for the requested operation with ErrInvalidInput,
// so callers can branch with errors.Is.
package textvec

import "errors"

var (
	// ErrInvalidParams is returned for malformed configuration, detected
	// before any data is consumed.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrInvalidInput is returned when the supplied data is structurally
	// insufficient, e.g. a token stream shorter than an n-gram window.
	ErrInvalidInput = errors.New("invalid input")
)
