package torch

import (
	"sync"

	"github.com/MrGo2008/torch/accel"
)

// Context carries process-global runtime state. There is one Context per
// process, returned by GlobalContext; its methods front the accelerator
// layer so callers never touch backend packages directly.
type Context struct {
	initAccelOnce sync.Once
	initAccelErr  error
}

var (
	globalOnce sync.Once
	globalCtx  *Context
)

// GlobalContext returns the process-wide Context. The first caller creates
// it; every subsequent call returns the same instance.
func GlobalContext() *Context {
	globalOnce.Do(func() {
		globalCtx = &Context{}
	})
	return globalCtx
}

// InitAccelerator eagerly initializes the accelerator runtime: device
// discovery, default device selection, and hot-path dispatch installation.
// Without it, initialization happens on the first accelerator call.
// Safe to call more than once; subsequent calls return the first result.
func (c *Context) InitAccelerator() error {
	c.initAccelOnce.Do(func() {
		c.initAccelErr = accel.Active().Initialize()
	})
	return c.initAccelErr
}

// HasAccelerator reports whether an accelerator device is ready for use.
func (c *Context) HasAccelerator() bool {
	return accel.Active().HasAccelerator()
}

// HasCompute reports whether the active device can run compute kernels.
func (c *Context) HasCompute() bool {
	return accel.Active().HasCompute()
}

// SupportsPinnedMemory reports whether pinned host memory allocation is
// available.
func (c *Context) SupportsPinnedMemory() bool {
	return accel.Active().SupportsPinnedMemory()
}

// DeviceCount returns the number of visible accelerator devices, 0 without
// a backend.
func (c *Context) DeviceCount() int {
	return accel.Active().DeviceCount()
}

// CurrentDevice returns the active device index through the hot-path
// dispatch table: accel.InvalidDevice until a backend has initialized.
func (c *Context) CurrentDevice() int {
	return accel.GetDevice()
}

// SetDevice switches the active device through the hot-path dispatch
// table. A no-op returning nil until a backend has initialized.
func (c *Context) SetDevice(device int) error {
	return accel.SetDevice(device)
}

// NewGenerator creates a random number generator bound to device.
// Ownership transfers to the caller.
func (c *Context) NewGenerator(device int) (accel.Generator, error) {
	return accel.Active().NewGenerator(device)
}

// PinnedAllocator creates an allocator for pinned host memory.
// Ownership transfers to the caller.
func (c *Context) PinnedAllocator() (accel.Allocator, error) {
	return accel.Active().NewPinnedAllocator()
}

// DeviceProperties returns the properties of the given device.
func (c *Context) DeviceProperties(device int) (*accel.DeviceProperties, error) {
	return accel.Active().DeviceProperties(device)
}

// CurrentStream returns the command stream handle for device.
func (c *Context) CurrentStream(device int) (accel.StreamHandle, error) {
	return accel.Active().CurrentStream(device)
}

// CurrentSparseHandle returns the sparse-math handle for device.
func (c *Context) CurrentSparseHandle(device int) (accel.SparseHandle, error) {
	return accel.Active().CurrentSparseHandle(device)
}

// PlanCacheMaxSize returns the capacity of the kernel plan cache.
func (c *Context) PlanCacheMaxSize() (int, error) {
	return accel.Active().PlanCacheMaxSize()
}

// SetPlanCacheMaxSize resizes the kernel plan cache.
func (c *Context) SetPlanCacheMaxSize(size int) error {
	return accel.Active().SetPlanCacheMaxSize(size)
}

// PlanCacheSize returns the number of cached kernel plans.
func (c *Context) PlanCacheSize() (int, error) {
	return accel.Active().PlanCacheSize()
}

// ClearPlanCache drops all cached kernel plans.
func (c *Context) ClearPlanCache() error {
	return accel.Active().ClearPlanCache()
}
