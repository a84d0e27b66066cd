//go:build !jsonv2

package jsonv2

import (
	godec "github.com/reoring/godec"
)

// Driver returns a fallback driver when the jsonv2 build tag is not enabled.
// It delegates to the encoding/json-backed driver.
func Driver() godec.JSONDriver { return godec.StdJSONDriver() }
