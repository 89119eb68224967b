// Package torch is a tensor computation core with optional GPU
// acceleration.
//
// The core builds and runs without any GPU runtime. Acceleration is
// provided by backend packages that register themselves on import:
//
//	import _ "github.com/MrGo2008/torch/accel/wgpu"
//
// Process-global state lives in the Context returned by GlobalContext.
// Accelerator functionality is reached through it; without a backend every
// query answers with a neutral value (no accelerator, zero devices) and
// every action fails with accel.ErrUnsupportedBackend.
package torch
