package compare_test

import (
	"context"
	"encoding/json"
	"testing"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"

	sonic "github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
)

// Struct-targeted decoding of the same small payload across libraries.

type cmpUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func godecUserDecoder(tb testing.TB) godec.Decoder[cmpUser] {
	tb.Helper()
	d, err := dsl.Bind[cmpUser](dsl.Object().
		Field("id", dsl.Of[string](dsl.String())).
		Field("name", dsl.Of[string](dsl.Default(dsl.String(), ""))))
	if err != nil {
		tb.Fatalf("bind failed: %v", err)
	}
	return d
}

func Benchmark_DecodeStruct_stdlib_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u cmpUser
		if err := json.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeStruct_gojson_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u cmpUser
		if err := gojson.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeStruct_jsoniter_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var ji = jsoniter.ConfigCompatibleWithStandardLibrary
	for i := 0; i < b.N; i++ {
		var u cmpUser
		if err := ji.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeStruct_sonic_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u cmpUser
		if err := sonic.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeStruct_godec_Small(b *testing.B) {
	ctx := context.Background()
	d := godecUserDecoder(b)
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
