package dsl

import (
	"context"
	"sort"

	godec "github.com/reoring/godec"
)

// Dict decodes every key of an object with elem, returning a map with the
// same keys. Unlike Object the key set is taken from the input itself. Keys
// are visited in sorted order so the first failure is deterministic.
func Dict[V any](elem godec.Decoder[V]) godec.Decoder[map[string]V] {
	return godec.DecoderFunc[map[string]V](func(ctx context.Context, v godec.Value) (map[string]V, error) {
		fields, ok := v.Fields()
		if !ok {
			return nil, godec.NewDecodeError("object", v)
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]V, len(fields))
		for _, k := range keys {
			dv, err := elem.Decode(ctx, fields[k])
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return out, nil
	})
}
