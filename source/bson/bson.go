package bson

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	eng "github.com/reoring/godec/internal/engine"
)

// engine.TokenSource implementation walking a decoded BSON document. The
// document deserializes into bson.D, which keeps element order and repeated
// keys, so enforcement sees duplicates exactly as JSON sources do.

type docSource struct {
	data    []byte
	started bool
	stack   []frame
	err     error
}

type frame struct {
	doc   bson.D
	arr   bson.A
	isArr bool
	i     int
	key   bool
}

// NewBytes wraps a raw BSON document into an engine.TokenSource. A BSON
// document is always a top-level object.
func NewBytes(b []byte) eng.TokenSource {
	return &docSource{data: b}
}

func (s *docSource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if !s.started {
		s.started = true
		var doc bson.D
		if err := bson.Unmarshal(s.data, &doc); err != nil {
			return s.fail(err)
		}
		s.stack = append(s.stack, frame{doc: doc, key: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	}

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		if top.isArr {
			if top.i >= len(top.arr) {
				s.stack = s.stack[:len(s.stack)-1]
				return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
			}
			v := top.arr[top.i]
			top.i++
			return s.emitValue(v)
		}
		if top.i >= len(top.doc) {
			s.stack = s.stack[:len(s.stack)-1]
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		}
		if top.key {
			top.key = false
			return eng.Token{Kind: eng.KindKey, String: top.doc[top.i].Key, Offset: -1}, nil
		}
		v := top.doc[top.i].Value
		top.i++
		top.key = true
		return s.emitValue(v)
	}
	return eng.Token{}, io.EOF
}

func (s *docSource) Location() int64 { return -1 }

func (s *docSource) fail(err error) (eng.Token, error) {
	s.err = err
	return eng.Token{}, err
}

// emitValue maps one decoded BSON value onto the JSON data model. Types with
// no JSON counterpart get a stable textual form (ObjectID hex, DateTime epoch
// millis); the remaining exotic types are rejected.
func (s *docSource) emitValue(v any) (eng.Token, error) {
	switch t := v.(type) {
	case bson.D:
		s.stack = append(s.stack, frame{doc: t, key: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	case bson.A:
		s.stack = append(s.stack, frame{arr: t, isArr: true})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
	case string:
		return eng.Token{Kind: eng.KindString, String: t, Offset: -1}, nil
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: t, Offset: -1}, nil
	case int32:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(int64(t), 10), Offset: -1}, nil
	case int64:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(t, 10), Offset: -1}, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return s.fail(fmt.Errorf("bson: cannot represent %v as a JSON number", t))
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(t, 'g', -1, 64), Offset: -1}, nil
	case nil:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case primitive.Null:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case primitive.Undefined:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case primitive.ObjectID:
		return eng.Token{Kind: eng.KindString, String: t.Hex(), Offset: -1}, nil
	case primitive.DateTime:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(int64(t), 10), Offset: -1}, nil
	case primitive.Decimal128:
		lit := t.String()
		if strings.ContainsAny(lit, "NI") {
			return s.fail(fmt.Errorf("bson: cannot represent decimal %q as a JSON number", lit))
		}
		return eng.Token{Kind: eng.KindNumber, Number: lit, Offset: -1}, nil
	case primitive.Symbol:
		return eng.Token{Kind: eng.KindString, String: string(t), Offset: -1}, nil
	case primitive.JavaScript:
		return eng.Token{Kind: eng.KindString, String: string(t), Offset: -1}, nil
	default:
		return s.fail(fmt.Errorf("bson: unsupported type %T", v))
	}
}
