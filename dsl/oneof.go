package dsl

import (
	"context"

	godec "github.com/reoring/godec"
)

// OneOf tries the alternatives in order and returns the first success.
// Failures before the winning alternative are discarded; when every
// alternative fails, only the last failure surfaces, so the error names the
// final expectation alone. Alternatives share one result type; mixed-type
// unions Map each arm onto a common type first.
func OneOf[T any](alts ...godec.Decoder[T]) godec.Decoder[T] {
	ds := make([]godec.Decoder[T], len(alts))
	copy(ds, alts)
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		var zero T
		if len(ds) == 0 {
			return zero, godec.NewDecodeError("value matching at least one decoder", v)
		}
		var lastErr error
		for _, d := range ds {
			out, err := d.Decode(ctx, v)
			if err == nil {
				return out, nil
			}
			lastErr = err
		}
		return zero, lastErr
	})
}
