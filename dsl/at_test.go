package dsl_test

import (
	"context"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
)

func TestAt(t *testing.T) {
	d := dsl.At([]string{"a", "b"}, dsl.Number())
	v, err := d.Decode(context.Background(), godec.MustValueOf(map[string]any{"a": map[string]any{"b": 5}}))
	if err != nil || v != 5 {
		t.Fatalf("got v=%v err=%v", v, err)
	}
}

func TestAtEmptyPath(t *testing.T) {
	d := dsl.At(nil, dsl.Number())
	v, err := d.Decode(context.Background(), godec.Int(9))
	if err != nil || v != 9 {
		t.Fatalf("got v=%v err=%v", v, err)
	}
}

func TestAtMissingPathKeepsOriginalValue(t *testing.T) {
	d := dsl.At([]string{"a", "b"}, dsl.Number())
	in := godec.MustValueOf(map[string]any{"a": map[string]any{}})
	_, err := d.Decode(context.Background(), in)
	if err == nil || err.Error() != `Decode error: expected value at a.b, got {"a":{}}` {
		t.Fatalf("got err=%v", err)
	}
	de, ok := godec.AsDecodeError(err)
	if !ok || de.Actual.String() != in.String() {
		t.Fatalf("actual=%v", de.Actual)
	}
}

func TestAtNonObjectStep(t *testing.T) {
	ctx := context.Background()
	d := dsl.At([]string{"a", "b"}, dsl.Number())
	_, err := d.Decode(ctx, godec.MustValueOf(map[string]any{"a": 1}))
	if de, ok := godec.AsDecodeError(err); !ok || de.Expected != "value at a.b" {
		t.Fatalf("got err=%v", err)
	}
	_, err = d.Decode(ctx, godec.Int(3))
	if de, ok := godec.AsDecodeError(err); !ok || de.Expected != "value at a.b" {
		t.Fatalf("got err=%v", err)
	}
}

func TestAtTerminalFailurePropagates(t *testing.T) {
	d := dsl.At([]string{"a"}, dsl.Number())
	_, err := d.Decode(context.Background(), godec.MustValueOf(map[string]any{"a": "x"}))
	if err == nil || err.Error() != `Decode error: expected number, got "x"` {
		t.Fatalf("got err=%v", err)
	}
}

func TestAtCopiesPath(t *testing.T) {
	path := []string{"a"}
	d := dsl.At(path, dsl.Number())
	path[0] = "mutated"
	v, err := d.Decode(context.Background(), godec.MustValueOf(map[string]any{"a": 1}))
	if err != nil || v != 1 {
		t.Fatalf("got v=%v err=%v", v, err)
	}
}

func TestFieldShorthand(t *testing.T) {
	ctx := context.Background()
	v, err := dsl.Field("name", dsl.String()).Decode(ctx, godec.MustValueOf(map[string]any{"name": "x"}))
	if err != nil || v != "x" {
		t.Fatalf("got v=%q err=%v", v, err)
	}
	_, err = dsl.Field("name", dsl.String()).Decode(ctx, godec.MustValueOf(map[string]any{}))
	if de, ok := godec.AsDecodeError(err); !ok || de.Expected != "value at name" {
		t.Fatalf("got err=%v", err)
	}
}
