package services

import "context"

// OrderSource reports the highest display order currently assigned within
// one ordering scope.
type OrderSource func(ctx context.Context) (int, error)

// AllocateOrder resolves a sibling's display order. A positive requested
// value is honored verbatim (duplicates among siblings are permitted; the
// store's secondary sort key keeps retrieval deterministic). Zero means
// append: max existing order in the scope plus one, starting at 1.
func AllocateOrder(ctx context.Context, src OrderSource, requested int) (int, error) {
	if requested > 0 {
		return requested, nil
	}
	max, err := src(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
