package vectorize

import (
	"slices"
	"sort"
)

// CSR is a compressed sparse row matrix of term counts. Row r holds the
// columns Indices[Indptr[r]:Indptr[r+1]], sorted ascending and unique, with
// the matching counts in Data.
type CSR struct {
	Shape   [2]int `json:"shape"`
	Indptr  []int  `json:"indptr"`
	Indices []int  `json:"indices"`
	Data    []int  `json:"data"`
}

// Rows returns the number of documents.
func (m *CSR) Rows() int { return m.Shape[0] }

// Cols returns the number of features.
func (m *CSR) Cols() int { return m.Shape[1] }

// Nnz returns the number of stored entries.
func (m *CSR) Nnz() int { return len(m.Indices) }

// Row returns a view of row r. The vector shares storage with the matrix.
func (m *CSR) Row(r int) SparseVector {
	lo, hi := m.Indptr[r], m.Indptr[r+1]
	return SparseVector{
		Indices: m.Indices[lo:hi:hi],
		Values:  m.Data[lo:hi:hi],
		Dim:     m.Cols(),
	}
}

// SparseVector is a single sparse row with ascending indices.
type SparseVector struct {
	Indices []int
	Values  []int
	Dim     int
}

// Get returns the value stored at column idx, or 0.
func (sv SparseVector) Get(idx int) int {
	if i, ok := slices.BinarySearch(sv.Indices, idx); ok {
		return sv.Values[i]
	}
	return 0
}

// Sum returns the total of all values.
func (sv SparseVector) Sum() int {
	var sum int
	for _, v := range sv.Values {
		sum += v
	}
	return sum
}

// Nnz returns the number of non-zero entries.
func (sv SparseVector) Nnz() int {
	return len(sv.Indices)
}

// accumulator grows a CSR matrix one document at a time.
type accumulator struct {
	indptr  []int
	indices []int
	data    []int
}

func newAccumulator() *accumulator {
	return &accumulator{indptr: []int{0}, indices: []int{}, data: []int{}}
}

// addRow sorts ids in place and appends them as one row, summing repeated
// ids. An empty ids still closes a row.
func (a *accumulator) addRow(ids []int) {
	slices.Sort(ids)
	for i := 0; i < len(ids); {
		j := i + 1
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		a.indices = append(a.indices, ids[i])
		a.data = append(a.data, j-i)
		i = j
	}
	a.indptr = append(a.indptr, len(a.indices))
}

func (a *accumulator) rows() int {
	return len(a.indptr) - 1
}

// extend appends the rows of b. remap, if not nil, translates b's column ids.
func (a *accumulator) extend(b *accumulator, remap []int) {
	base := len(a.indices)
	for _, idx := range b.indices {
		if remap != nil {
			idx = remap[idx]
		}
		a.indices = append(a.indices, idx)
	}
	a.data = append(a.data, b.data...)
	for _, p := range b.indptr[1:] {
		a.indptr = append(a.indptr, base+p)
	}
}

func (a *accumulator) matrix(cols int) *CSR {
	return &CSR{
		Shape:   [2]int{a.rows(), cols},
		Indptr:  a.indptr,
		Indices: a.indices,
		Data:    a.data,
	}
}

// sortFeatures renumbers vocab by lexicographic rank of its terms, remaps the
// column ids accumulated so far and restores ascending order within rows.
func (a *accumulator) sortFeatures(vocab map[string]int) {
	terms := make([]string, 0, len(vocab))
	for term := range vocab {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	perm := make([]int, len(vocab))
	for id, term := range terms {
		perm[vocab[term]] = id
		vocab[term] = id
	}
	for i, idx := range a.indices {
		a.indices[i] = perm[idx]
	}
	for r := range a.rows() {
		lo, hi := a.indptr[r], a.indptr[r+1]
		sort.Sort(byColumn{a.indices[lo:hi], a.data[lo:hi]})
	}
}

type byColumn struct {
	indices []int
	data    []int
}

func (b byColumn) Len() int           { return len(b.indices) }
func (b byColumn) Less(i, j int) bool { return b.indices[i] < b.indices[j] }
func (b byColumn) Swap(i, j int) {
	b.indices[i], b.indices[j] = b.indices[j], b.indices[i]
	b.data[i], b.data[j] = b.data[j], b.data[i]
}
