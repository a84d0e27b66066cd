package godec

import (
	"errors"
	"fmt"
)

// DecodeError is the single failure type produced by decoders. It records a
// textual description of what was expected and the actual value encountered.
// Decoding is fail-fast: the first mismatch anywhere in the decoder tree
// aborts the whole decode and surfaces as one DecodeError.
type DecodeError struct {
	Expected string // e.g. "number", "object", "value at a.b"
	Actual   Value  // the offending value, rendered as JSON in Error()
}

// NewDecodeError builds a DecodeError for the given expectation and value.
func NewDecodeError(expected string, actual Value) *DecodeError {
	return &DecodeError{Expected: expected, Actual: actual}
}

// Error renders the canonical message, for example:
//
//	Decode error: expected number, got "x"
func (e *DecodeError) Error() string {
	return "Decode error: expected " + e.Expected + ", got " + e.Actual.String()
}

// AsDecodeError extracts a *DecodeError from err using errors.As internally.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Source-level issue codes reported while reading input, before any decoder
// runs.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// SourceError reports a failure while reading input or enforcing DecodeOpt
// limits: malformed input, duplicate keys, depth or size caps. It is distinct
// from DecodeError, which reports shape mismatches found by decoders on a
// well-formed Value.
type SourceError struct {
	Code    string // one of the codes above
	Path    string // JSON Pointer to the offending node ("/" at the root)
	Offset  int64  // byte offset when known, -1 otherwise
	Message string
	Cause   error // optional underlying error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *SourceError) Unwrap() error { return e.Cause }

// AsSourceError extracts a *SourceError from err using errors.As internally.
func AsSourceError(err error) (*SourceError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SourceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
