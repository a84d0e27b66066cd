package godec

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/godec/internal/engine"
)

var errNilSource = errors.New("godec: nil source")

// ValueFrom consumes src and builds the complete Value it contains. Options
// apply source-level enforcement; the last option wins when several are
// given. Failures are reported as *SourceError.
func ValueFrom(src Source, opts ...DecodeOpt) (Value, error) {
	if src == nil {
		return Value{}, errNilSource
	}
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	raw, err := buildAny(src, opt)
	if err != nil {
		return Value{}, toSourceError(err, src)
	}
	v, err := ValueOf(raw)
	if err != nil {
		return Value{}, &SourceError{Code: CodeParseError, Offset: -1, Message: err.Error(), Cause: err}
	}
	return v, nil
}

// DecodeFrom reads one Value from src and decodes it with d. It is the
// primary entry point for decoding straight from encoded input.
func DecodeFrom[T any](ctx context.Context, d Decoder[T], src Source, opts ...DecodeOpt) (T, error) {
	var zero T
	if d == nil {
		return zero, errNilDecoder
	}
	v, err := ValueFrom(src, opts...)
	if err != nil {
		return zero, err
	}
	return d.Decode(ctx, v)
}

func buildAny(src Source, opt DecodeOpt) (any, error) {
	engSrc := EngineTokenSource(src)
	if opt.enforcing() {
		engSrc = eng.WrapWithEnforcement(engSrc, opt.engineOptions())
	}
	return eng.BuildAny(engSrc)
}

// toSourceError converts engine and driver failures into *SourceError.
func toSourceError(err error, src Source) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &SourceError{Code: ie.Code, Path: ie.Path, Offset: src.Location(), Message: ie.Message, Cause: err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SourceError{Code: CodeParseError, Offset: src.Location(), Message: "unexpected end of input", Cause: err}
	}
	if se, ok := AsSourceError(err); ok {
		return se
	}
	return &SourceError{Code: CodeParseError, Offset: src.Location(), Message: err.Error(), Cause: err}
}

// ---- Source -> engine.TokenSource adapter ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

// EngineTokenSource exposes the engine view of a Source for module-internal
// users. Engine-backed sources are unwrapped to avoid adapter round-trips.
func EngineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
