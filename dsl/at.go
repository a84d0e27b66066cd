package dsl

import (
	"context"
	"strings"

	godec "github.com/reoring/godec"
)

// At walks the given key path through nested objects and decodes the terminal
// node with d. A missing key or non-object node anywhere along the path fails
// with expected "value at <path>" and the whole original input as the actual
// value, wherever along the path the walk stopped.
func At[T any](path []string, d godec.Decoder[T]) godec.Decoder[T] {
	keys := make([]string, len(path))
	copy(keys, path)
	return godec.DecoderFunc[T](func(ctx context.Context, v godec.Value) (T, error) {
		node := v
		for _, k := range keys {
			next, ok := node.Field(k)
			if !ok {
				var zero T
				return zero, godec.NewDecodeError("value at "+strings.Join(keys, "."), v)
			}
			node = next
		}
		return d.Decode(ctx, node)
	})
}

// Field decodes one named key of an object. It is At with a single-segment
// path.
func Field[T any](name string, d godec.Decoder[T]) godec.Decoder[T] {
	return At([]string{name}, d)
}
