package dsl

import (
	"context"
	"fmt"

	godec "github.com/reoring/godec"
)

// AnyDecoder is the type-erased form of a decoder, used where fields of
// different result types sit side by side in one object builder. Build one
// with Of.
type AnyDecoder struct {
	decode func(ctx context.Context, v godec.Value) (any, error)
}

// Of erases the result type of d so it can be registered as an object field.
// A nil decoder yields the zero AnyDecoder, which the builder rejects.
func Of[T any](d godec.Decoder[T]) AnyDecoder {
	if d == nil {
		return AnyDecoder{}
	}
	return AnyDecoder{decode: func(ctx context.Context, v godec.Value) (any, error) {
		out, err := d.Decode(ctx, v)
		if err != nil {
			return nil, err
		}
		return out, nil
	}}
}

// Decode implements godec.Decoder[any].
func (a AnyDecoder) Decode(ctx context.Context, v godec.Value) (any, error) {
	if a.decode == nil {
		return nil, fmt.Errorf("dsl: zero AnyDecoder")
	}
	return a.decode(ctx, v)
}

type objectField struct {
	name string
	dec  AnyDecoder
}

// ObjectBuilder assembles a fixed field set for an object decoder. Fields
// decode in declaration order; the field order of the input never matters.
// Builder misuse (empty names, nil decoders, repeated fields) is collected
// and reported by Build.
type ObjectBuilder struct {
	fields []objectField
	errs   []error
}

// Object creates a new empty object builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Field registers one field with its type-erased decoder.
func (b *ObjectBuilder) Field(name string, d AnyDecoder) *ObjectBuilder {
	switch {
	case name == "":
		b.errs = append(b.errs, fmt.Errorf("dsl: empty field name"))
	case d.decode == nil:
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q has no decoder", name))
	case b.declared(name):
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q declared twice", name))
	default:
		b.fields = append(b.fields, objectField{name: name, dec: d})
	}
	return b
}

func (b *ObjectBuilder) declared(name string) bool {
	for _, f := range b.fields {
		if f.name == name {
			return true
		}
	}
	return false
}

// Build finalizes the builder into a decoder producing map[string]any keyed
// by the declared field names. A key missing from the input decodes as null,
// exactly like a key present with a null value; fields that must tolerate
// absence wrap their decoder in Maybe or Default. Unknown input keys are
// ignored.
func (b *ObjectBuilder) Build() (godec.Decoder[map[string]any], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	fields := make([]objectField, len(b.fields))
	copy(fields, b.fields)
	return &objectDecoder{fields: fields}, nil
}

// MustBuild is like Build but panics on builder errors.
func (b *ObjectBuilder) MustBuild() godec.Decoder[map[string]any] {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

type objectDecoder struct {
	fields []objectField
}

func (o *objectDecoder) Decode(ctx context.Context, v godec.Value) (map[string]any, error) {
	if v.Kind() != godec.KindObject {
		return nil, godec.NewDecodeError("object", v)
	}
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		// absent key yields the zero Value, which is null
		fv, _ := v.Field(f.name)
		dv, err := f.dec.decode(ctx, fv)
		if err != nil {
			return nil, err
		}
		out[f.name] = dv
	}
	return out, nil
}
