package dsl

import (
	"context"
	"time"

	godec "github.com/reoring/godec"
)

// TimeRFC3339 decodes RFC3339 timestamp strings into time.Time. Fractional
// seconds are accepted but not required. Non-strings fail with "string",
// strings in any other shape with "RFC3339 timestamp".
func TimeRFC3339() godec.Decoder[time.Time] {
	return godec.DecoderFunc[time.Time](func(ctx context.Context, v godec.Value) (time.Time, error) {
		s, ok := v.Str()
		if !ok {
			return time.Time{}, godec.NewDecodeError("string", v)
		}
		t, err := parseRFC3339(s)
		if err != nil {
			return time.Time{}, godec.NewDecodeError("RFC3339 timestamp", v)
		}
		return t, nil
	})
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
