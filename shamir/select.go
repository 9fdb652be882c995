package shamir

import (
	"fmt"
	"slices"
)

// Select sorts the shares by x-coordinate ascending and returns the first k.
// The input slice is left untouched. Duplicate x-coordinates anywhere in the
// set are rejected.
func Select(shares []*Share, k int) ([]*Share, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidThreshold, k)
	}
	for i, s := range shares {
		if !s.valid() {
			return nil, fmt.Errorf("%w: share %d", ErrInvalidShare, i)
		}
	}
	if len(shares) < k {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientPoints, k, len(shares))
	}

	sorted := slices.Clone(shares)
	slices.SortFunc(sorted, func(a, b *Share) int {
		return a.X.Cmp(b.X)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].X.Cmp(sorted[i].X) == 0 {
			return nil, fmt.Errorf("%w: x=%s", ErrDuplicateX, sorted[i].X)
		}
	}

	return sorted[:k:k], nil
}
