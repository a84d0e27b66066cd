package dsl

import (
	"context"
	"errors"
	"sync"

	godec "github.com/reoring/godec"
)

// Succeed ignores its input and always produces val.
func Succeed[T any](val T) godec.Decoder[T] {
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		return val, nil
	})
}

// Fail ignores its input and always fails with the given expectation.
// Together with Succeed it covers the constant branches of AndThen.
func Fail[T any](expected string) godec.Decoder[T] {
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		var zero T
		return zero, godec.NewDecodeError(expected, v)
	})
}

// Lazy defers construction of the decoder until first use, which lets
// recursive decoders refer to themselves. fn runs at most once, also under
// concurrent first decodes.
func Lazy[T any](fn func() godec.Decoder[T]) godec.Decoder[T] {
	var once sync.Once
	var d godec.Decoder[T]
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		once.Do(func() { d = fn() })
		if d == nil {
			var zero T
			return zero, errors.New("dsl: Lazy built a nil decoder")
		}
		return d.Decode(ctx, v)
	})
}
