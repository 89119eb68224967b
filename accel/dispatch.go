package accel

import (
	"sync/atomic"
)

// Direct dispatch slots.
//
// Setting and reading the active device happens on nearly every operation
// dispatch, too often to pay for interface dispatch plus the backend's own
// internal indirection. These slots are plain function pointers: one atomic
// load, one indirect call. They start out as safe defaults and are
// overwritten once by the backend during Initialize; there is no per-call
// backend selection.
//
// The slots are atomic pointers rather than bare variables so that a reader
// racing the backend's installation still observes either the default or
// the installed function, never a torn value.

// SetDeviceFunc switches the active accelerator device, validating the index.
type SetDeviceFunc func(device int) error

// GetDeviceFunc returns the active accelerator device index.
type GetDeviceFunc func() int

// UncheckedSetDeviceFunc switches the active device without validation.
// Used on paths that already know the index is in range.
type UncheckedSetDeviceFunc func(device int)

var (
	setDeviceSlot          atomic.Pointer[SetDeviceFunc]
	getDeviceSlot          atomic.Pointer[GetDeviceFunc]
	uncheckedSetDeviceSlot atomic.Pointer[UncheckedSetDeviceFunc]
)

// Slot defaults: a no-op setter and a sentinel-returning getter, so calling
// through a slot before any backend initializes is always safe.
var (
	defaultSetDevice          SetDeviceFunc          = func(int) error { return nil }
	defaultGetDevice          GetDeviceFunc          = func() int { return InvalidDevice }
	defaultUncheckedSetDevice UncheckedSetDeviceFunc = func(int) {}
)

func init() {
	setDeviceSlot.Store(&defaultSetDevice)
	getDeviceSlot.Store(&defaultGetDevice)
	uncheckedSetDeviceSlot.Store(&defaultUncheckedSetDevice)
}

// SetDevice switches the active accelerator device.
// Before a backend installs its implementation this is a validated no-op
// returning nil.
func SetDevice(device int) error {
	return (*setDeviceSlot.Load())(device)
}

// GetDevice returns the active accelerator device index, or InvalidDevice
// before a backend installs its implementation.
func GetDevice() int {
	return (*getDeviceSlot.Load())()
}

// UncheckedSetDevice switches the active device without validation.
// A no-op before a backend installs its implementation.
func UncheckedSetDevice(device int) {
	(*uncheckedSetDeviceSlot.Load())(device)
}

// InstallDeviceFuncs overwrites the dispatch slots with the backend's
// implementations. Backends call this exactly once, from Initialize, before
// any device-dependent work is handed out. A nil argument restores the
// corresponding default (used by tests to undo an installation).
func InstallDeviceFuncs(set SetDeviceFunc, get GetDeviceFunc, unchecked UncheckedSetDeviceFunc) {
	if set == nil {
		set = defaultSetDevice
	}
	if get == nil {
		get = defaultGetDevice
	}
	if unchecked == nil {
		unchecked = defaultUncheckedSetDevice
	}
	setDeviceSlot.Store(&set)
	getDeviceSlot.Store(&get)
	uncheckedSetDeviceSlot.Store(&unchecked)
}
