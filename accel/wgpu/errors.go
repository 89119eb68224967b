package wgpu

import "errors"

// Package errors for the wgpu backend.
var (
	// ErrNoGPU is returned when no Vulkan adapter is available.
	ErrNoGPU = errors.New("wgpu: no GPU adapter available")

	// ErrInvalidDevice is returned when a device index is out of range.
	ErrInvalidDevice = errors.New("wgpu: invalid device index")

	// ErrShaderCompile is returned when WGSL compilation fails.
	ErrShaderCompile = errors.New("wgpu: shader compilation failed")

	// ErrNoSparse is returned because the wgpu backend has no sparse math
	// runtime.
	ErrNoSparse = errors.New("wgpu: sparse math not supported")

	// ErrInvalidSize is returned when an allocation size is not positive.
	ErrInvalidSize = errors.New("wgpu: invalid allocation size")

	// ErrInvalidCacheSize is returned when a plan cache capacity is not
	// positive.
	ErrInvalidCacheSize = errors.New("wgpu: invalid plan cache capacity")
)
