package dsl_test

import (
	"context"
	"strconv"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
)

func TestOneOfFirstSuccessWins(t *testing.T) {
	ctx := context.Background()
	asString := dsl.OneOf(
		dsl.Map(func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }, dsl.Number()),
		dsl.String(),
	)
	if v, err := asString.Decode(ctx, godec.Int(5)); err != nil || v != "5" {
		t.Fatalf("got v=%q err=%v", v, err)
	}
	if v, err := asString.Decode(ctx, godec.String("x")); err != nil || v != "x" {
		t.Fatalf("got v=%q err=%v", v, err)
	}
}

func TestOneOfKeepsOnlyLastFailure(t *testing.T) {
	asString := dsl.OneOf(
		dsl.Map(func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }, dsl.Number()),
		dsl.String(),
	)
	_, err := asString.Decode(context.Background(), godec.Bool(true))
	if err == nil || err.Error() != "Decode error: expected string, got true" {
		t.Fatalf("got err=%v", err)
	}
}

func TestOneOfOrderDecidesReportedFailure(t *testing.T) {
	d := dsl.OneOf(
		dsl.String(),
		dsl.Map(func(f float64) string { return "" }, dsl.Number()),
	)
	_, err := d.Decode(context.Background(), godec.Bool(true))
	if de, ok := godec.AsDecodeError(err); !ok || de.Expected != "number" {
		t.Fatalf("got err=%v", err)
	}
}

func TestOneOfSingle(t *testing.T) {
	d := dsl.OneOf(dsl.Number())
	if v, err := d.Decode(context.Background(), godec.Int(3)); err != nil || v != 3 {
		t.Fatalf("got v=%v err=%v", v, err)
	}
}

func TestOneOfEmpty(t *testing.T) {
	d := dsl.OneOf[string]()
	_, err := d.Decode(context.Background(), godec.Null())
	if _, ok := godec.AsDecodeError(err); !ok {
		t.Fatalf("got err=%v", err)
	}
}

func TestOneOfLaterAlternativeNotTriedAfterSuccess(t *testing.T) {
	tried := false
	spy := godec.DecoderFunc[float64](func(ctx context.Context, v godec.Value) (float64, error) {
		tried = true
		return 0, godec.NewDecodeError("never", v)
	})
	d := dsl.OneOf[float64](dsl.Number(), spy)
	v, err := d.Decode(context.Background(), godec.Int(2))
	if err != nil || v != 2 {
		t.Fatalf("got v=%v err=%v", v, err)
	}
	if tried {
		t.Fatalf("alternatives after the first success must not run")
	}
}
