package dsl

import (
	"context"
	"strconv"

	godec "github.com/reoring/godec"
)

// Array decodes every element of an array with elem, preserving order and
// length. The first element failure aborts the whole decode and propagates
// unchanged; non-arrays fail with "array".
func Array[E any](elem godec.Decoder[E]) godec.Decoder[[]E] {
	return godec.DecoderFunc[[]E](func(ctx context.Context, v godec.Value) ([]E, error) {
		items, ok := v.Items()
		if !ok {
			return nil, godec.NewDecodeError("array", v)
		}
		out := make([]E, 0, len(items))
		for _, it := range items {
			ev, err := elem.Decode(ctx, it)
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	})
}

// Index decodes the i-th element of an array with d. An out-of-range index
// fails with the whole array as the actual value.
func Index[T any](i int, d godec.Decoder[T]) godec.Decoder[T] {
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		var zero T
		if v.Kind() != godec.KindArray {
			return zero, godec.NewDecodeError("array", v)
		}
		ev, ok := v.Index(i)
		if !ok {
			return zero, godec.NewDecodeError("value at index "+strconv.Itoa(i), v)
		}
		return d.Decode(ctx, ev)
	})
}
