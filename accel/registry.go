package accel

import (
	"sync"
)

// Backend name constants.
const (
	// BackendWGPU is the name of the WebGPU backend (accel/wgpu).
	BackendWGPU = "wgpu"
)

// Factory creates a new Hooks implementation. A factory must not touch the
// accelerator runtime; expensive work belongs in Hooks.Initialize.
type Factory func() Hooks

// registry holds registered backend factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for backend selection (first usable entry wins).
	backendPriority = []string{BackendWGPU}
)

// Register records a backend factory under the given name.
// This is typically called from init() functions in backend packages, so
// registration happens as a side effect of the package being imported at
// all; no ordering with respect to the core's startup is required.
//
// Duplicate registration is not an error: the last registration wins,
// deterministically, and a diagnostic is logged.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := factories[name]; dup {
		slogger().Warn("accel: replacing previously registered backend", "name", name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New invokes the factory registered under name.
// Returns ErrNotRegistered if the name was never registered; Active()
// interprets that as "backend absent", not as an error to propagate.
func New(name string) (Hooks, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, ErrNotRegistered
	}
	return factory(), nil
}
