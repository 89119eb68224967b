// Package wgpu provides a GPU accelerator backend using gogpu/wgpu.
//
// The backend drives Vulkan through the pure-Go HAL layer and compiles WGSL
// compute kernels to SPIR-V with gogpu/naga. Compiled kernels are kept in a
// bounded LRU plan cache so repeated launches of the same kernel skip
// recompilation.
//
// # Registration and Selection
//
// The backend registers itself on import:
//
//	import _ "github.com/MrGo2008/torch/accel/wgpu"
//
// After that, accel.Active() resolves to this backend instead of the stub.
// No GPU work happens at import time; device discovery is deferred until the
// first accelerator call.
//
// # Error Handling
//
// Common errors returned by this package:
//
//   - ErrNoGPU: no Vulkan adapter was found
//   - ErrInvalidDevice: device index out of range
//   - ErrShaderCompile: WGSL to SPIR-V compilation failed
//   - ErrNoSparse: sparse math is not available on this backend
//   - ErrInvalidSize: allocation size is not positive
//   - ErrInvalidCacheSize: plan cache capacity is not positive
//
// # Thread Safety
//
// The backend is safe for concurrent use from multiple goroutines.
package wgpu
