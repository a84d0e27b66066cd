package dsl_test

import (
	"context"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
)

func TestMaybe(t *testing.T) {
	ctx := context.Background()
	d := dsl.Maybe(dsl.Number())
	if v, err := d.Decode(ctx, godec.Null()); err != nil || v != nil {
		t.Fatalf("null: got v=%v err=%v", v, err)
	}
	v, err := d.Decode(ctx, godec.Int(5))
	if err != nil || v == nil || *v != 5 {
		t.Fatalf("value: got v=%v err=%v", v, err)
	}
	_, err = d.Decode(ctx, godec.String("x"))
	if err == nil || err.Error() != `Decode error: expected number, got "x"` {
		t.Fatalf("got err=%v", err)
	}
}

func TestMaybeDistinguishesNullFromZero(t *testing.T) {
	ctx := context.Background()
	d := dsl.Maybe(dsl.Number())
	absent, err := d.Decode(ctx, godec.Null())
	if err != nil || absent != nil {
		t.Fatalf("got v=%v err=%v", absent, err)
	}
	zero, err := d.Decode(ctx, godec.Int(0))
	if err != nil || zero == nil || *zero != 0 {
		t.Fatalf("got v=%v err=%v", zero, err)
	}
}

func TestDefault(t *testing.T) {
	ctx := context.Background()
	d := dsl.Default(dsl.Number(), 0)
	if v, err := d.Decode(ctx, godec.Null()); err != nil || v != 0 {
		t.Fatalf("null: got v=%v err=%v", v, err)
	}
	if v, err := d.Decode(ctx, godec.Int(7)); err != nil || v != 7 {
		t.Fatalf("value: got v=%v err=%v", v, err)
	}
	if _, err := d.Decode(ctx, godec.String("x")); err == nil {
		t.Fatalf("inner failure must surface")
	}
}

func TestDefaultNonZeroFallback(t *testing.T) {
	d := dsl.Default(dsl.String(), "fallback")
	v, err := d.Decode(context.Background(), godec.Null())
	if err != nil || v != "fallback" {
		t.Fatalf("got v=%q err=%v", v, err)
	}
}

func TestDefaultOnMissingObjectKey(t *testing.T) {
	d := dsl.Object().
		Field("retries", dsl.Of[float64](dsl.Default(dsl.Number(), 3))).
		MustBuild()
	v, err := d.Decode(context.Background(), godec.MustValueOf(map[string]any{}))
	if err != nil || v["retries"] != float64(3) {
		t.Fatalf("got v=%v err=%v", v, err)
	}
}
