// Package godec provides:
//
// - Composable, type-safe decoding of semi-structured data via Decoder[T]
// - A single fail-fast error model via DecodeError (expected/actual)
// - A generic Value tree (null/bool/number/string/array/object) as the decode input
// - Pluggable input sources (JSON, YAML, BSON) with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place combinators under dsl/ and input drivers under source/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	d := buildDecoder()
//	out, err := godec.DecodeFrom(ctx, d, godec.JSONBytes(data))
//
//	v, err := godec.ValueFrom(godec.YAMLBytes(data))
//	out, err := d.Decode(ctx, v)
package godec
