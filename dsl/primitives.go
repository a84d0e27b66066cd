package dsl

import (
	"context"
	"encoding/json"

	godec "github.com/reoring/godec"
)

// Bool matches boolean values and returns them unchanged.
func Bool() godec.Decoder[bool] {
	return godec.DecoderFunc[bool](func(ctx context.Context, v godec.Value) (bool, error) {
		if b, ok := v.Bool(); ok {
			return b, nil
		}
		return false, godec.NewDecodeError("boolean", v)
	})
}

// Number matches numeric values and returns them as float64.
func Number() godec.Decoder[float64] {
	return godec.DecoderFunc[float64](func(ctx context.Context, v godec.Value) (float64, error) {
		n, ok := v.Number()
		if !ok {
			return 0, godec.NewDecodeError("number", v)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, godec.NewDecodeError("number", v)
		}
		return f, nil
	})
}

// String matches string values and returns them unchanged.
func String() godec.Decoder[string] {
	return godec.DecoderFunc[string](func(ctx context.Context, v godec.Value) (string, error) {
		if s, ok := v.Str(); ok {
			return s, nil
		}
		return "", godec.NewDecodeError("string", v)
	})
}

// Int matches numbers whose lexical form is a base-10 integer and returns
// them as int64. Non-numbers fail with "number", numbers with a fractional
// part or exponent fail with "integer".
func Int() godec.Decoder[int64] {
	return godec.DecoderFunc[int64](func(ctx context.Context, v godec.Value) (int64, error) {
		n, ok := v.Number()
		if !ok {
			return 0, godec.NewDecodeError("number", v)
		}
		i, err := n.Int64()
		if err != nil {
			return 0, godec.NewDecodeError("integer", v)
		}
		return i, nil
	})
}

// JSONNumber matches numeric values and returns their lexical form without
// converting, so precision beyond float64 survives.
func JSONNumber() godec.Decoder[json.Number] {
	return godec.DecoderFunc[json.Number](func(ctx context.Context, v godec.Value) (json.Number, error) {
		if n, ok := v.Number(); ok {
			return n, nil
		}
		return "", godec.NewDecodeError("number", v)
	})
}

// Raw accepts any value unchanged, including null.
func Raw() godec.Decoder[godec.Value] {
	return godec.DecoderFunc[godec.Value](func(ctx context.Context, v godec.Value) (godec.Value, error) {
		return v, nil
	})
}
