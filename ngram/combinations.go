package ngram

import (
	"fmt"

	"github.com/happyhackingspace/textvec"
)

// sampleCombinations enumerates, in lexicographic order, every set of n
// strictly increasing indices drawn from [0, maxI]. With fix0 the first index
// is pinned to 0 and only the remaining n-1 positions vary over [1, maxI].
//
//	fix0=false, maxI=3, n=3: [0 1 2] [0 1 3] [0 2 3] [1 2 3]
//	fix0=true,  maxI=3, n=3: [0 1 2] [0 1 3] [0 2 3]
type sampleCombinations struct {
	minI int
	maxI int
	n    int

	position []int
	first    bool
	last     bool
}

func newSampleCombinations(fix0 bool, maxI, n int) (*sampleCombinations, error) {
	if n < 0 || maxI+1 < n {
		return nil, fmt.Errorf("ngram: %w: cannot pick %d distinct indices from [0, %d]", textvec.ErrInvalidParams, n, maxI)
	}
	minI := 0
	if fix0 {
		minI = 1
	}
	position := make([]int, n)
	for i := range position {
		position[i] = i
	}
	return &sampleCombinations{
		minI:     minI,
		maxI:     maxI,
		n:        n,
		position: position,
		first:    true,
		last:     n == maxI+1,
	}, nil
}

// mustSampleCombinations is used where the arguments are derived from already
// validated iterator parameters.
func mustSampleCombinations(fix0 bool, maxI, n int) *sampleCombinations {
	c, err := newSampleCombinations(fix0, maxI, n)
	if err != nil {
		panic(err)
	}
	return c
}

// next returns the next combination. The returned slice is owned by the
// generator and is only valid until the following call.
func (c *sampleCombinations) next() ([]int, bool) {
	if c.first {
		c.first = false
		return c.position, true
	}
	if c.last {
		return nil, false
	}

	for i := len(c.position) - 1; i >= c.minI; i-- {
		e := c.position[i]
		if e < c.maxI-(c.n-i-1) {
			v := e
			for j := i; j < len(c.position); j++ {
				v++
				c.position[j] = v
			}
			if i == c.minI && e+1 == c.maxI {
				c.last = true
			}
			return c.position, true
		}
	}
	c.last = true
	return nil, false
}
