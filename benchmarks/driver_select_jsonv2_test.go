//go:build jsonv2

package godec_test

import (
	godec "github.com/reoring/godec"
	drv "github.com/reoring/godec/source/jsonv2"
)

func init() {
	godec.SetJSONDriver(drv.Driver())
}
