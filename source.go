package godec

import (
	"io"
	"sync"

	eng "github.com/reoring/godec/internal/engine"
	bsonsrc "github.com/reoring/godec/source/bson"
	gojsonsrc "github.com/reoring/godec/source/gojson"
	jsonsrc "github.com/reoring/godec/source/json"
	yamlsrc "github.com/reoring/godec/source/yaml"
)

// TokenKind enumerates input token kinds. Custom drivers construct and branch
// on these values.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise). Numbers are carried in lexical form.
type Token struct {
	Kind   TokenKind
	String string // key/string payload
	Number string // number literal
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources. NextToken returns io.EOF
// after the final token.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is backed by goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the goccy/go-json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(gojsonsrc.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(gojsonsrc.NewBytes(b)) }
func (defaultJSONDriver) Name() string                 { return "go-json" }

// StdJSONDriver returns a JSONDriver backed by encoding/json. Unlike the
// default driver it tracks byte offsets, so MaxBytes enforcement applies.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(jsonsrc.NewReader(r)) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(jsonsrc.NewBytes(b)) }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// JSONString wraps a string as a JSON Source.
func JSONString(s string) Source { return getJSONDriver().NewBytes([]byte(s)) }

// YAMLReader wraps an io.Reader as a YAML Source. Aliases are followed and
// scalar tags map onto the JSON data model.
func YAMLReader(r io.Reader) Source { return SourceFromEngine(yamlsrc.NewReader(r)) }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return SourceFromEngine(yamlsrc.NewBytes(b)) }

// BSONBytes wraps a single BSON document as a Source. Duplicate keys in
// documents survive at the token level, so DecodeOpt enforcement applies to
// BSON input as well.
func BSONBytes(b []byte) Source { return SourceFromEngine(bsonsrc.NewBytes(b)) }

// SourceFromEngine wraps an engine TokenSource as a public Source. It is used
// by the built-in drivers; external drivers implement Source directly.
func SourceFromEngine(inner eng.TokenSource) Source { return &engineSourceAdapter{inner: inner} }

// EnforceSource wraps a Source with runtime enforcement of the limits in opt
// (duplicate keys, depth, bytes). ValueFrom applies enforcement by itself;
// EnforceSource is for callers feeding a Source into their own plumbing.
func EnforceSource(s Source, opt DecodeOpt) Source {
	if !opt.enforcing() {
		return s
	}
	return SourceFromEngine(eng.WrapWithEnforcement(EngineTokenSource(s), opt.engineOptions()))
}

type engineSourceAdapter struct{ inner eng.TokenSource }

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}
