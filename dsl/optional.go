package dsl

import (
	"context"

	godec "github.com/reoring/godec"
)

// Maybe turns d into an optional decoder. Null input (which includes keys
// missing from an object) yields nil without consulting d; any other input
// delegates fully, so malformed non-null values still fail.
func Maybe[T any](d godec.Decoder[T]) godec.Decoder[*T] {
	return godec.DecoderFunc[*T](func(ctx context.Context, v godec.Value) (*T, error) {
		if v.IsNull() {
			return nil, nil
		}
		out, err := d.Decode(ctx, v)
		if err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Default substitutes def for null input, so the decoder always yields a
// concrete T. Non-null input delegates to d unchanged.
func Default[T any](d godec.Decoder[T], def T) godec.Decoder[T] {
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		if v.IsNull() {
			return def, nil
		}
		return d.Decode(ctx, v)
	})
}
