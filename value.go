package godec

import (
	"encoding/json"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase variant name. The same wording appears in
// DecodeError expectations ("boolean", "number", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a semi-structured value: the union of null, boolean, number,
// string, array and object produced by parsing JSON-like input. The zero
// Value is null. Numbers keep their lexical form as json.Number, so large
// integers and high-precision decimals survive until a decoder picks a
// concrete numeric type.
//
// Values are treated as immutable: decoders only read them, and callers must
// not mutate slices or maps reachable from a Value they handed out.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null Value. It is identical to the zero Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64 using the shortest round-trip literal.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Int wraps an integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// NumberJSON wraps a number already in lexical form. The literal is not
// validated here; decoders surface conversion failures at decode time.
func NumberJSON(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array builds an array Value from the given elements.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object builds an object Value from the given fields.
func Object(fields map[string]Value) Value { return Value{kind: KindObject, obj: fields} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; ok is false for other variants.
func (v Value) Bool() (b, ok bool) { return v.b, v.kind == KindBool }

// Number returns the numeric payload in lexical form.
func (v Value) Number() (n json.Number, ok bool) { return v.num, v.kind == KindNumber }

// Str returns the string payload.
func (v Value) Str() (s string, ok bool) { return v.str, v.kind == KindString }

// Items returns the elements of an array Value.
func (v Value) Items() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Fields returns the fields of an object Value. The map is shared, not
// copied.
func (v Value) Fields() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

// Len returns the element count for arrays, the field count for objects, and
// 0 for every other variant.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an array Value. ok is false when v is not
// an array or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Field returns the named field of an object Value. ok is false when v is not
// an object or the key is absent; a key explicitly set to null reports
// ok=true with a null Value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	fv, ok := v.obj[name]
	return fv, ok
}

// Interface converts v into plain Go data: nil, bool, json.Number, string,
// []any and map[string]any. The result shares no structure with v.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, fv := range v.obj {
			out[k] = fv.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders v as compact JSON text with object keys in sorted order, so
// the output is deterministic. This is the serialization used for the actual
// value inside DecodeError messages.
func (v Value) String() string {
	data, err := gojson.Marshal(v.Interface())
	if err != nil {
		return fmt.Sprintf("%v", v.Interface())
	}
	return string(data)
}

// ValueOf converts plain Go data into a Value. Supported inputs are nil,
// bool, string, json.Number, Go integer and float types, []any,
// map[string]any, map[any]any with string keys (the YAML parser shape),
// []Value, map[string]Value and Value itself.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return NumberJSON(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return NumberJSON(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return NumberJSON(json.Number(strconv.FormatUint(t, 10))), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = ev
		}
		return Value{kind: KindArray, arr: items}, nil
	case []Value:
		return Array(t...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = ev
		}
		return Value{kind: KindObject, obj: fields}, nil
	case map[string]Value:
		return Object(t), nil
	case map[any]any:
		// YAML parsers hand out any-keyed maps; only string keys fit the
		// object model.
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("godec: cannot convert map key %T into an object key", k)
			}
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			fields[ks] = ev
		}
		return Value{kind: KindObject, obj: fields}, nil
	default:
		return Value{}, fmt.Errorf("godec: cannot convert %T into a Value", x)
	}
}

// MustValueOf is like ValueOf but panics on unsupported input. It is meant
// for tests and hand-built fixtures.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}
