// Package workpool runs fork-join jobs over consecutive chunks of a slice.
package workpool

import (
	"golang.org/x/sync/errgroup"
)

// ChunkSize returns the number of items per chunk for n items spread over
// jobs workers: four chunks per worker, at least one item each.
func ChunkSize(n, jobs int) int {
	return max(n/(max(jobs, 1)*4), 1)
}

// Map calls fn on consecutive chunks of items using at most jobs goroutines
// and returns the results in chunk order. offset is the index of the chunk's
// first item in items. With jobs <= 1 fn is called once on the whole slice.
//
// Chunks never share state through Map. When several chunks fail, the error
// of the earliest chunk is returned.
func Map[T, R any](items []T, jobs int, fn func(offset int, chunk []T) (R, error)) ([]R, error) {
	if jobs <= 1 || len(items) <= 1 {
		r, err := fn(0, items)
		if err != nil {
			return nil, err
		}
		return []R{r}, nil
	}

	size := ChunkSize(len(items), jobs)
	n := (len(items) + size - 1) / size
	results := make([]R, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range n {
		lo := i * size
		hi := min(lo+size, len(items))
		g.Go(func() error {
			results[i], errs[i] = fn(lo, items[lo:hi])
			return errs[i]
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}
