//go:build jsonv2

package jsonv2

import (
	v2json "encoding/json/v2"
	"io"
	"sort"
	"strconv"

	godec "github.com/reoring/godec"
)

// Driver returns a godec.JSONDriver backed by encoding/json/v2.
// Note: Requires building with -tags jsonv2 and GOEXPERIMENT=jsonv2.
func Driver() godec.JSONDriver { return driverV2{} }

type driverV2 struct{}

func (driverV2) NewReader(r io.Reader) godec.Source {
	// Non-streaming: read fully, then tokenize the decoded tree.
	data, err := io.ReadAll(r)
	if err != nil {
		return &v2Source{err: err}
	}
	return newV2SourceFromBytes(data)
}

func (driverV2) NewBytes(b []byte) godec.Source { return newV2SourceFromBytes(b) }
func (driverV2) Name() string                   { return "encoding/json/v2" }

// v2Source materializes tokens from a decoded any tree (non-streaming fallback).
type v2Source struct {
	tokens []godec.Token
	idx    int
	err    error
}

func newV2SourceFromBytes(b []byte) godec.Source {
	var v any
	if err := v2json.Unmarshal(b, &v); err != nil {
		return &v2Source{err: err}
	}
	buf := make([]godec.Token, 0, 64)
	buf = appendValueTokens(buf, v)
	return &v2Source{tokens: buf}
}

func (s *v2Source) NextToken() (godec.Token, error) {
	if s.err != nil {
		return godec.Token{}, s.err
	}
	if s.idx >= len(s.tokens) {
		return godec.Token{}, io.EOF
	}
	t := s.tokens[s.idx]
	s.idx++
	return t, nil
}

func (s *v2Source) Location() int64 { return -1 }

func appendValueTokens(out []godec.Token, v any) []godec.Token {
	switch x := v.(type) {
	case map[string]any:
		out = append(out, godec.Token{Kind: godec.TokenBeginObject, Offset: -1})
		// stable order for determinism
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, godec.Token{Kind: godec.TokenKey, String: k, Offset: -1})
			out = appendValueTokens(out, x[k])
		}
		out = append(out, godec.Token{Kind: godec.TokenEndObject, Offset: -1})
	case []any:
		out = append(out, godec.Token{Kind: godec.TokenBeginArray, Offset: -1})
		for _, e := range x {
			out = appendValueTokens(out, e)
		}
		out = append(out, godec.Token{Kind: godec.TokenEndArray, Offset: -1})
	case string:
		out = append(out, godec.Token{Kind: godec.TokenString, String: x, Offset: -1})
	case bool:
		out = append(out, godec.Token{Kind: godec.TokenBool, Bool: x, Offset: -1})
	case nil:
		out = append(out, godec.Token{Kind: godec.TokenNull, Offset: -1})
	case float64:
		out = append(out, godec.Token{Kind: godec.TokenNumber, Number: strconv.FormatFloat(x, 'g', -1, 64), Offset: -1})
	case int64:
		out = append(out, godec.Token{Kind: godec.TokenNumber, Number: strconv.FormatInt(x, 10), Offset: -1})
	case uint64:
		out = append(out, godec.Token{Kind: godec.TokenNumber, Number: strconv.FormatUint(x, 10), Offset: -1})
	default:
		out = append(out, godec.Token{Kind: godec.TokenNull, Offset: -1})
	}
	return out
}
