package wgpu

import (
	"github.com/MrGo2008/torch/accel"
)

// init registers the wgpu backend on package import.
// This makes accel.Active() resolve to this backend:
//
//	import _ "github.com/MrGo2008/torch/accel/wgpu"
//
// Registration is cheap; device discovery runs on first use.
func init() {
	accel.Register(accel.BackendWGPU, func() accel.Hooks {
		return New()
	})
}
