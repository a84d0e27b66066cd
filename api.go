package godec

import (
	"context"
	"errors"
)

// Decoder converts a semi-structured Value into a T. Decode returns the typed
// value or the first mismatch as an error; there is no partial result and no
// error aggregation.
//
// Decoders are immutable once constructed and hold no per-call state, so a
// single decoder may serve any number of Decode calls concurrently.
type Decoder[T any] interface {
	Decode(ctx context.Context, v Value) (T, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc[T any] func(ctx context.Context, v Value) (T, error)

// Decode implements Decoder.
func (f DecoderFunc[T]) Decode(ctx context.Context, v Value) (T, error) { return f(ctx, v) }

var errNilDecoder = errors.New("godec: nil decoder")

// Decode runs d against v. It is a package-level mirror of d.Decode for call
// sites that prefer the free-function entry point.
func Decode[T any](ctx context.Context, d Decoder[T], v Value) (T, error) {
	if d == nil {
		var zero T
		return zero, errNilDecoder
	}
	return d.Decode(ctx, v)
}

// SafeDecode runs d against v, returning (zero, false) on any failure.
func SafeDecode[T any](ctx context.Context, d Decoder[T], v Value) (T, bool) {
	out, err := Decode(ctx, d, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
