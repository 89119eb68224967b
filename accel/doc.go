// Package accel decouples the torch core from optional hardware
// acceleration backends.
//
// The core is built without linking against any GPU runtime. Everything it
// may ever want from an accelerator is collected in the Hooks interface;
// when no backend is present, every operation degrades to a documented
// sentinel or a descriptive error instead of a link failure or a crash.
//
// # Backend Registration
//
// Backends register a factory via init() and are selected lazily on first
// use. Users opt in with a blank import:
//
//	import _ "github.com/MrGo2008/torch/accel/wgpu"
//
// # Reaching the Backend
//
// Core code obtains the active implementation through Active():
//
//	hooks := accel.Active()
//	if hooks.HasAccelerator() {
//		gen, err := hooks.NewGenerator(0)
//		...
//	}
//
// Active() resolves exactly once per process: the first registered backend
// in priority order wins; with none registered it returns the stub, whose
// queries report "no accelerator" and whose actions fail with
// ErrUnsupportedBackend.
//
// # Hot-Path Dispatch
//
// Switching and reading the active device happens on nearly every operation
// dispatch, so those two calls bypass interface dispatch entirely and go
// through function-pointer slots (SetDevice, GetDevice, UncheckedSetDevice)
// that the backend installs during its initialization. One pointer load, one
// indirect call.
package accel
