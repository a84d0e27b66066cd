//go:build stdjson

package compare_test

import (
	godec "github.com/reoring/godec"
)

func init() {
	godec.SetJSONDriver(godec.StdJSONDriver())
}
