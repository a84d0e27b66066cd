package godec_test

import (
	"context"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
)

func TestDecodeRunsDecoder(t *testing.T) {
	ctx := context.Background()
	v, err := godec.Decode[string](ctx, dsl.String(), godec.String("hello"))
	if err != nil || v != "hello" {
		t.Fatalf("got v=%q err=%v", v, err)
	}
}

func TestDecodeNilDecoder(t *testing.T) {
	ctx := context.Background()
	if _, err := godec.Decode[string](ctx, nil, godec.String("x")); err == nil {
		t.Fatalf("expected error for nil decoder")
	}
}

func TestSafeDecode(t *testing.T) {
	ctx := context.Background()
	if v, ok := godec.SafeDecode[string](ctx, dsl.String(), godec.String("x")); !ok || v != "x" {
		t.Fatalf("got v=%q ok=%v", v, ok)
	}
	if v, ok := godec.SafeDecode[string](ctx, dsl.String(), godec.Int(1)); ok || v != "" {
		t.Fatalf("expected zero value and ok=false, got v=%q ok=%v", v, ok)
	}
}

func TestDecoderFunc(t *testing.T) {
	d := godec.DecoderFunc[int](func(ctx context.Context, v godec.Value) (int, error) {
		return v.Len(), nil
	})
	n, err := d.Decode(context.Background(), godec.Array(godec.Int(1), godec.Int(2)))
	if err != nil || n != 2 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := godec.Decode[bool](context.Background(), dsl.Bool(), godec.String("true"))
	if err == nil {
		t.Fatalf("expected decode failure")
	}
	want := `Decode error: expected boolean, got "true"`
	if err.Error() != want {
		t.Fatalf("message=%q want %q", err.Error(), want)
	}
	de, ok := godec.AsDecodeError(err)
	if !ok || de.Expected != "boolean" {
		t.Fatalf("AsDecodeError: de=%+v ok=%v", de, ok)
	}
	if b, _ := de.Actual.Str(); b != "true" {
		t.Fatalf("actual=%v", de.Actual)
	}
}

func TestAsDecodeErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := godec.AsDecodeError(context.Canceled); ok {
		t.Fatalf("plain errors must not match DecodeError")
	}
	if _, ok := godec.AsDecodeError(nil); ok {
		t.Fatalf("nil must not match DecodeError")
	}
}
