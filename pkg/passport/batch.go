package passport

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ValidateAll validates records concurrently with at most workers goroutines
// (workers <= 0 means unbounded). The result at index i is the outcome of
// records[i].Validate(mode): nil or Violations. The error is non-nil only for
// an unknown mode or a cancelled context.
func ValidateAll(ctx context.Context, records []Record, mode Mode, workers int) ([]error, error) {
	if mode != ModeSimplified && mode != ModeFull {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	results := make([]error, len(records))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = rec.Validate(mode)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountValid returns how many results are nil.
func CountValid(results []error) int {
	n := 0
	for _, err := range results {
		if err == nil {
			n++
		}
	}
	return n
}
