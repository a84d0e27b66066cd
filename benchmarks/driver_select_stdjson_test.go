//go:build stdjson

package godec_test

import (
	godec "github.com/reoring/godec"
)

func init() {
	godec.SetJSONDriver(godec.StdJSONDriver())
}
