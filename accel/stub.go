package accel

// StubHooks is the default Hooks implementation, active when no backend is
// registered. Queries return neutral sentinels and never fail; actions fail
// with ErrUnsupportedBackend naming the operation.
//
// Backend packages may embed StubHooks to inherit safe defaults for
// operations they do not support.
type StubHooks struct{}

// ensure interface compliance
var _ Hooks = StubHooks{}

// Initialize fails: there is nothing to initialize without a backend.
func (StubHooks) Initialize() error {
	return unsupported("Initialize")
}

// HasAccelerator reports false.
func (StubHooks) HasAccelerator() bool { return false }

// HasCompute reports false.
func (StubHooks) HasCompute() bool { return false }

// SupportsPinnedMemory reports false.
func (StubHooks) SupportsPinnedMemory() bool { return false }

// DeviceCount reports 0 devices.
func (StubHooks) DeviceCount() int { return 0 }

// CurrentDevice reports InvalidDevice.
func (StubHooks) CurrentDevice() int { return InvalidDevice }

// NewGenerator fails with ErrUnsupportedBackend.
func (StubHooks) NewGenerator(int) (Generator, error) {
	return nil, unsupported("NewGenerator")
}

// NewPinnedAllocator fails with ErrUnsupportedBackend.
func (StubHooks) NewPinnedAllocator() (Allocator, error) {
	return nil, unsupported("NewPinnedAllocator")
}

// DeviceProperties fails with ErrUnsupportedBackend.
func (StubHooks) DeviceProperties(int) (*DeviceProperties, error) {
	return nil, unsupported("DeviceProperties")
}

// CurrentStream fails with ErrUnsupportedBackend.
func (StubHooks) CurrentStream(int) (StreamHandle, error) {
	return 0, unsupported("CurrentStream")
}

// CurrentSparseHandle fails with ErrUnsupportedBackend.
func (StubHooks) CurrentSparseHandle(int) (SparseHandle, error) {
	return 0, unsupported("CurrentSparseHandle")
}

// PlanCacheMaxSize fails: there is no safe sentinel for a cache capacity.
func (StubHooks) PlanCacheMaxSize() (int, error) {
	return 0, unsupported("PlanCacheMaxSize")
}

// SetPlanCacheMaxSize fails with ErrUnsupportedBackend.
func (StubHooks) SetPlanCacheMaxSize(int) error {
	return unsupported("SetPlanCacheMaxSize")
}

// PlanCacheSize fails with ErrUnsupportedBackend.
func (StubHooks) PlanCacheSize() (int, error) {
	return 0, unsupported("PlanCacheSize")
}

// ClearPlanCache fails with ErrUnsupportedBackend.
func (StubHooks) ClearPlanCache() error {
	return unsupported("ClearPlanCache")
}
