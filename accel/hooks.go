package accel

// StreamHandle identifies a backend command stream. The core never
// interprets the value; it only passes it back to the backend.
type StreamHandle uint64

// SparseHandle identifies a backend sparse-math context. Opaque to the core.
type SparseHandle uint64

// InvalidDevice is the sentinel device index reported when no accelerator
// is active.
const InvalidDevice = -1

// DeviceKind classifies an accelerator device.
type DeviceKind int

const (
	// DeviceKindUnknown is reported when the backend cannot classify the device.
	DeviceKindUnknown DeviceKind = iota

	// DeviceKindDiscrete is a dedicated GPU with its own memory.
	DeviceKindDiscrete

	// DeviceKindIntegrated is a GPU sharing memory with the host.
	DeviceKindIntegrated
)

// String returns the human-readable device kind.
func (k DeviceKind) String() string {
	switch k {
	case DeviceKindDiscrete:
		return "discrete"
	case DeviceKindIntegrated:
		return "integrated"
	default:
		return "unknown"
	}
}

// DeviceProperties describes one accelerator device.
type DeviceProperties struct {
	// Name is the device name as reported by the driver.
	Name string

	// Kind classifies the device (discrete, integrated).
	Kind DeviceKind

	// MaxBufferSize is the largest allocatable buffer in bytes.
	MaxBufferSize uint64

	// MaxWorkgroupSize is the maximum compute workgroup size per dimension.
	MaxWorkgroupSize [3]uint32
}

// Generator produces random numbers on an accelerator device.
// A Generator is owned by the caller that created it.
type Generator interface {
	// Device returns the device index the generator is bound to.
	Device() int

	// InitialSeed returns the seed the generator was created with or last
	// reseeded to.
	InitialSeed() uint64

	// ManualSeed reseeds the generator and resets its state.
	ManualSeed(seed uint64)

	// Uint64 returns the next value in the stream.
	Uint64() uint64
}

// Buffer is a device-visible memory allocation. The caller owns the buffer
// and must Release it when done.
type Buffer interface {
	// Size returns the allocation size in bytes.
	Size() int

	// Release frees the underlying device memory. The buffer must not be
	// used afterwards.
	Release()
}

// Allocator allocates device-visible memory.
type Allocator interface {
	// Alloc allocates size bytes. The returned buffer is caller-owned.
	Alloc(size int) (Buffer, error)
}

// Hooks is the omnibus interface for accelerator functionality the core may
// call into. A method belongs here when its implementation requires the
// backend runtime and it is called from code built without that runtime.
//
// Three operation shapes, with fixed default behavior on the stub:
//
//   - Queries (HasAccelerator, HasCompute, SupportsPinnedMemory,
//     DeviceCount, CurrentDevice) never fail; the stub returns a neutral
//     sentinel (false, 0, InvalidDevice).
//   - Resource-producing actions (Initialize, NewGenerator,
//     NewPinnedAllocator) fail on the stub with ErrUnsupportedBackend
//     naming the operation.
//   - Introspection and plan-cache control fail on the stub because no
//     sentinel would be safe to branch on.
//
// Hooks implementations carry their state internally; the interface value
// handed out by Active() is shared by all callers for the process lifetime
// and must be safe for concurrent use.
type Hooks interface {
	// Initialize brings up the backend runtime: device discovery, default
	// device selection, and installation of the direct dispatch slots.
	// Safe to call more than once; subsequent calls return the first result.
	Initialize() error

	// HasAccelerator reports whether an accelerator device is ready for use.
	HasAccelerator() bool

	// HasCompute reports whether the active device can run compute kernels.
	HasCompute() bool

	// SupportsPinnedMemory reports whether NewPinnedAllocator is usable.
	SupportsPinnedMemory() bool

	// DeviceCount returns the number of visible devices, 0 without a backend.
	DeviceCount() int

	// CurrentDevice returns the active device index, InvalidDevice without
	// a backend.
	CurrentDevice() int

	// NewGenerator creates a random number generator bound to device.
	// Ownership transfers to the caller.
	NewGenerator(device int) (Generator, error)

	// NewPinnedAllocator creates an allocator for host-visible pinned
	// memory. Ownership transfers to the caller.
	NewPinnedAllocator() (Allocator, error)

	// DeviceProperties returns the properties of the given device.
	DeviceProperties(device int) (*DeviceProperties, error)

	// CurrentStream returns the command stream handle for device.
	CurrentStream(device int) (StreamHandle, error)

	// CurrentSparseHandle returns the sparse-math handle for device.
	CurrentSparseHandle(device int) (SparseHandle, error)

	// PlanCacheMaxSize returns the capacity of the kernel plan cache.
	PlanCacheMaxSize() (int, error)

	// SetPlanCacheMaxSize resizes the kernel plan cache, evicting the least
	// recently used plans if the new capacity is smaller.
	SetPlanCacheMaxSize(size int) error

	// PlanCacheSize returns the number of cached kernel plans.
	PlanCacheSize() (int, error)

	// ClearPlanCache drops all cached kernel plans.
	ClearPlanCache() error
}
