package dsl

import (
	"context"
	"errors"

	godec "github.com/reoring/godec"
)

// Map post-processes a successful decode with a pure function. Failures of
// the wrapped decoder propagate unchanged, so Map(identity, d) behaves
// exactly like d.
func Map[A, B any](fn func(A) B, d godec.Decoder[A]) godec.Decoder[B] {
	return godec.DecoderFunc[B](func(ctx context.Context, v godec.Value) (B, error) {
		var zero B
		out, err := d.Decode(ctx, v)
		if err != nil {
			return zero, err
		}
		return fn(out), nil
	})
}

// AndThen picks the next decoder from the result of d and runs it against the
// same input value. This is the dependent-decoding hook: decode a tag field
// first, then decode the whole object as the variant the tag names.
func AndThen[A, B any](d godec.Decoder[A], fn func(A) godec.Decoder[B]) godec.Decoder[B] {
	return godec.DecoderFunc[B](func(ctx context.Context, v godec.Value) (B, error) {
		var zero B
		out, err := d.Decode(ctx, v)
		if err != nil {
			return zero, err
		}
		next := fn(out)
		if next == nil {
			return zero, errors.New("dsl: AndThen selected a nil decoder")
		}
		return next.Decode(ctx, v)
	})
}
