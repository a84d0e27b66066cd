package dsl

import (
	"context"
	"fmt"
	"reflect"

	godec "github.com/reoring/godec"
)

// Bind builds b and lands the resulting record on struct type T. Builder
// field names are matched against struct fields through godec.ResolveStructKey
// (godec tag, then json tag, then the field name); every declared builder
// field must resolve to some settable struct field or Bind fails.
func Bind[T any](b *ObjectBuilder) (godec.Decoder[T], error) {
	inner, err := b.Build()
	if err != nil {
		return nil, err
	}
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: Bind requires a struct type, got %s", rt)
	}
	idxByKey := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := godec.ResolveStructKey(sf)
		if key == "" || key == "-" {
			continue
		}
		idxByKey[key] = i
	}
	fieldIdx := make(map[string]int, len(b.fields))
	for _, f := range b.fields {
		i, ok := idxByKey[f.name]
		if !ok {
			return nil, fmt.Errorf("dsl: no field on %s accepts key %q", rt, f.name)
		}
		fieldIdx[f.name] = i
	}
	return &bindDecoder[T]{inner: inner, typ: rt, fieldIdx: fieldIdx}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *ObjectBuilder) godec.Decoder[T] {
	d, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return d
}

type bindDecoder[T any] struct {
	inner    godec.Decoder[map[string]any]
	typ      reflect.Type
	fieldIdx map[string]int
}

func (s *bindDecoder[T]) Decode(ctx context.Context, v godec.Value) (T, error) {
	var zero T
	m, err := s.inner.Decode(ctx, v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.typ).Elem()
	for key, idx := range s.fieldIdx {
		if err := assignField(rv.Field(idx), m[key]); err != nil {
			return zero, fmt.Errorf("dsl: field %q: %w", key, err)
		}
	}
	return rv.Interface().(T), nil
}

// assignField copies one decoded value onto a struct field. Conversions are
// restricted to same-kind types and numeric widenings so an int64 never turns
// into a rune string by accident.
func assignField(fv reflect.Value, val any) error {
	if val == nil {
		fv.SetZero()
		return nil
	}
	vv := reflect.ValueOf(val)
	if vv.Type().AssignableTo(fv.Type()) {
		fv.Set(vv)
		return nil
	}
	if convertibleKind(vv.Kind(), fv.Kind()) && vv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(vv.Convert(fv.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", val, fv.Type())
}

func convertibleKind(from, to reflect.Kind) bool {
	if from == to {
		return true
	}
	return numericKind(from) && numericKind(to)
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
