// Package dsl provides the combinator surface for building godec decoders.
//
// Overview
//   - Primitives: Bool()/Number()/String() plus Int()/JSONNumber()/Raw() for
//     the common numeric and passthrough cases.
//   - Structure: Array(elem), Object()...MustBuild(), Dict(elem).
//   - Transformation: Map(fn, d) for post-processing, AndThen(d, fn) for
//     dependent decoding (discriminated unions).
//   - Optionality: Maybe(d) yields *T with nil for null; Default(d, def)
//     substitutes a concrete fallback.
//   - Access: At(path, d), Field(name, d), Index(i, d).
//   - Alternation: OneOf(alts...) tries decoders in order, first success wins.
//   - Plumbing: Succeed/Fail constants, Lazy for recursive decoders,
//     Bind[T]/MustBind[T] for struct binding via reflection.
//
// Entry points
//   - Compose a decoder once, usually at package init, then run it any number
//     of times with godec.Decode, godec.DecodeFrom or d.Decode directly.
//   - Object(): field-by-field record decoding; register fields with
//     Field(name, Of[T](d)), finish with Build()/MustBuild().
//   - Bind[T]/MustBind[T]: same builder, but the record lands on struct T,
//     matched through godec/json struct tags.
//
// File layout (roles)
//   - primitives.go: leaf decoders for scalar kinds.
//   - array.go/dict.go/object.go: structural combinators and the object
//     builder.
//   - transform.go/optional.go: Map/AndThen and Maybe/Default.
//   - at.go/oneof.go: nested access and alternation.
//   - bind.go: reflection binding of object records onto structs.
//   - helpers.go/time.go: constant decoders, Lazy, RFC3339 timestamps.
//
// Example (quickstart)
//
//	package main
//
//	import (
//	    "context"
//
//	    "github.com/reoring/godec"
//	    g "github.com/reoring/godec/dsl"
//	)
//
//	type User struct {
//	    ID    int64  `json:"id"`
//	    Email string `json:"email"`
//	}
//
//	func main() {
//	    ctx := context.Background()
//	    user := g.MustBind[User](g.Object().
//	        Field("id", g.Of[int64](g.Int())).
//	        Field("email", g.Of[string](g.String())))
//
//	    data := []byte(`{"id":1,"email":"x@example.com"}`)
//	    u, err := godec.DecodeFrom[User](ctx, user, godec.JSONBytes(data))
//	    _ = u
//	    _ = err
//	}
//
// Example (optional fields)
//
//	// Missing keys decode as null, so optional fields wrap their decoder in
//	// Maybe or Default.
//	cfg := g.Object().
//	    Field("host", g.Of[string](g.String())).
//	    Field("port", g.Of[int64](g.Default(g.Int(), 8080))).
//	    MustBuild()
//
// Example (union)
//
//	// Alternatives share a result type; Map each arm onto it first.
//	id := g.OneOf(
//	    g.Map(func(n float64) string { return strconv.FormatFloat(n, 'f', -1, 64) }, g.Number()),
//	    g.String(),
//	)
//
// Decoders built here are immutable after construction, keep no per-call
// state, and are safe for concurrent reuse.
package dsl
