package godec

import (
	eng "github.com/reoring/godec/internal/engine"
)

// DecodeOpt bundles source-level options enforced while reading input into a
// Value. The zero value disables every limit.
type DecodeOpt struct {
	// RejectDuplicateKeys fails reading with CodeDuplicateKey when an object
	// repeats a key. When false, the last occurrence wins silently.
	RejectDuplicateKeys bool
	// MaxDepth caps container nesting; 0 means unlimited.
	MaxDepth int
	// MaxBytes caps consumed input bytes on sources that track offsets;
	// 0 means unlimited.
	MaxBytes int64
}

func (o DecodeOpt) enforcing() bool {
	return o.RejectDuplicateKeys || o.MaxDepth > 0 || o.MaxBytes > 0
}

func (o DecodeOpt) engineOptions() eng.EnforceOptions {
	return eng.EnforceOptions{
		RejectDuplicates: o.RejectDuplicateKeys,
		MaxDepth:         o.MaxDepth,
		MaxBytes:         o.MaxBytes,
	}
}
