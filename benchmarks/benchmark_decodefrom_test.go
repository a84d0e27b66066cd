package godec_test

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
)

// ---- Helpers ----

func smallUserDecoder(tb testing.TB) godec.Decoder[map[string]any] {
	tb.Helper()
	d, err := dsl.Object().
		Field("id", dsl.Of[string](dsl.String())).
		Field("name", dsl.Of[string](dsl.Default(dsl.String(), ""))).
		Build()
	if err != nil {
		tb.Fatalf("decoder build failed: %v", err)
	}
	return d
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice"}`)
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateHugeJSONArray(numObjects, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		fmt.Fprintf(&buf, "\"id\":\"obj_%d\",", i)
		fmt.Fprintf(&buf, "\"name\":\"n%d\",", i)
		fmt.Fprintf(&buf, "\"age\":%d,", i)
		if i%2 == 0 {
			buf.WriteString("\"active\":true,")
		} else {
			buf.WriteString("\"active\":false,")
		}
		fmt.Fprintf(&buf, "\"meta\":{\"score\":%d}", i)
		for k := 0; k < extraFields; k++ {
			buf.WriteByte(',')
			buf.WriteByte('"')
			buf.WriteString("k")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\":\"v")
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString("_")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\"")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// decoder for huge array items: only the id field matters for throughput
func hugeItemDecoder(tb testing.TB) godec.Decoder[map[string]any] {
	tb.Helper()
	d, err := dsl.Object().
		Field("id", dsl.Of[string](dsl.String())).
		Build()
	if err != nil {
		tb.Fatalf("decoder build failed: %v", err)
	}
	return d
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_DecodeFrom_Object_Small_JSONBytes(b *testing.B) {
	ctx := context.Background()
	d := smallUserDecoder(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeFrom_Object_Small_JSONReader(b *testing.B) {
	ctx := context.Background()
	d := smallUserDecoder(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := bytes.NewReader(data)
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONReader(r)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeFrom_Object_Small_Strict(b *testing.B) {
	ctx := context.Background()
	d := smallUserDecoder(b)
	data := smallUserJSON()
	opt := godec.DecodeOpt{RejectDuplicateKeys: true, MaxDepth: 128}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data), opt); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ValueFrom_Object_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.ValueFrom(godec.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// decode step alone, against a prebuilt Value
func Benchmark_Decode_Object_Small_PrebuiltValue(b *testing.B) {
	ctx := context.Background()
	d := smallUserDecoder(b)
	v, err := godec.ValueFrom(godec.JSONBytes(smallUserJSON()))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Decode(ctx, v); err != nil {
			b.Fatal(err)
		}
	}
}

// Array micro: ["a","b","c"]
func Benchmark_DecodeFrom_Array_String_Small(b *testing.B) {
	ctx := context.Background()
	d := dsl.Array(dsl.String())
	data := []byte(`["a","b","c"]`)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Macro benchmarks (huge JSON) ----

// 10k objects with 8 extra fields each ~ O(10-20MB) depending on numbers
const (
	hugeObjects   = 10000
	hugeExtraKeys = 8
)

func Benchmark_DecodeFrom_HugeArray_Objects_JSONBytes(b *testing.B) {
	ctx := context.Background()
	d := dsl.Array(hugeItemDecoder(b))
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeFrom_HugeArray_Objects_Strict(b *testing.B) {
	ctx := context.Background()
	d := dsl.Array(hugeItemDecoder(b))
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	opt := godec.DecodeOpt{RejectDuplicateKeys: true, MaxDepth: 128}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data), opt); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ValueFrom_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(hugeObjects, hugeExtraKeys)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := godec.ValueFrom(godec.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}
