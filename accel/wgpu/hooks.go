package wgpu

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/MrGo2008/torch/accel"
)

//go:embed shaders/probe.wgsl
var probeWGSL string

// defaultPlanCacheSize is the initial capacity of the kernel plan cache.
const defaultPlanCacheSize = 64

// openDevice is a logical device with its submission queue.
type openDevice struct {
	device hal.Device
	queue  hal.Queue
}

// Hooks implements accel.Hooks on top of gogpu/wgpu.
//
// Device discovery is lazy: the first accelerator call enumerates Vulkan
// adapters, opens the default device, and installs the direct device
// dispatch functions. Initialization runs at most once; its result is
// cached, so a machine without a GPU answers every query with the same
// neutral values the stub would.
type Hooks struct {
	initOnce sync.Once
	initErr  error

	mu         sync.Mutex
	instance   hal.Instance
	adapters   []hal.ExposedAdapter
	opened     map[int]openDevice
	current    int
	hasCompute bool
	plans      *planCache[hal.ShaderModule]
}

// Interface compliance checks.
var _ accel.Hooks = (*Hooks)(nil)

// New creates an uninitialized backend. Device discovery runs on the first
// accelerator call or an explicit Initialize.
func New() *Hooks {
	return &Hooks{
		opened:  make(map[int]openDevice),
		current: accel.InvalidDevice,
	}
}

// SetLogger sets the logger for the backend and its internal packages.
// Called by accel.SetLogger to propagate logging configuration.
func (h *Hooks) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Initialize discovers Vulkan adapters, opens the default device, probes
// compute support, and installs the direct device dispatch functions.
// Safe to call more than once; subsequent calls return the first result.
func (h *Hooks) Initialize() error {
	h.initOnce.Do(func() {
		h.initErr = h.initialize()
	})
	return h.initErr
}

func (h *Hooks) initialize() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: Initialize: vulkan backend not available: %w", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: Initialize: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: Initialize: %w", ErrNoGPU)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.instance = instance
	h.adapters = adapters
	h.current = defaultAdapter(adapters)

	dev, err := h.ensureDeviceLocked(h.current)
	if err != nil {
		index := h.current
		h.instance.Destroy()
		h.instance = nil
		h.adapters = nil
		h.current = accel.InvalidDevice
		return fmt.Errorf("wgpu: Initialize: open device %d: %w", index, err)
	}

	// Plans compile against the default device; a dropped plan releases
	// its shader module there once unpinned.
	h.plans = newPlanCache(defaultPlanCacheSize,
		func(source string) (hal.ShaderModule, error) {
			words, err := compileWGSL(source)
			if err != nil {
				return nil, err
			}
			return dev.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
				Label:  "kernel",
				Source: hal.ShaderSource{SPIRV: words},
			})
		},
		func(m hal.ShaderModule) {
			dev.device.DestroyShaderModule(m)
		},
	)

	// Probe compute support with a trivial kernel, compiled directly so it
	// does not occupy a plan cache slot. Failure is not fatal; the device
	// stays usable for buffer work.
	if err := h.probeCompute(dev.device); err != nil {
		slogger().Warn("wgpu: compute probe failed, compute unavailable", "error", err)
	} else {
		h.hasCompute = true
	}

	accel.InstallDeviceFuncs(h.setDevice, h.getDevice, h.uncheckedSetDevice)

	slogger().Info("wgpu: accelerator initialized",
		"adapters", len(adapters),
		"device", h.current,
		"name", adapters[h.current].Info.Name,
		"compute", h.hasCompute)
	return nil
}

// defaultAdapter picks the default device index: the first discrete GPU,
// else the first integrated GPU, else adapter 0.
func defaultAdapter(adapters []hal.ExposedAdapter) int {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			return i
		}
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return i
		}
	}
	return 0
}

// probeCompute compiles the embedded probe kernel and creates a throwaway
// shader module on device to verify compute shader support.
func (h *Hooks) probeCompute(device hal.Device) error {
	words, err := compileWGSL(probeWGSL)
	if err != nil {
		return err
	}
	probe, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "compute_probe",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return err
	}
	device.DestroyShaderModule(probe)
	return nil
}

// ensureDeviceLocked opens the device at index if it is not open yet.
// Caller holds h.mu and has validated the index.
func (h *Hooks) ensureDeviceLocked(index int) (openDevice, error) {
	if dev, ok := h.opened[index]; ok {
		return dev, nil
	}
	open, err := h.adapters[index].Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return openDevice{}, err
	}
	dev := openDevice{device: open.Device, queue: open.Queue}
	h.opened[index] = dev
	slogger().Debug("wgpu: opened device", "device", index, "name", h.adapters[index].Info.Name)
	return dev, nil
}

// checkDeviceLocked validates a device index against the adapter list.
// Caller holds h.mu.
func (h *Hooks) checkDeviceLocked(op string, device int) error {
	if device < 0 || device >= len(h.adapters) {
		return fmt.Errorf("wgpu: %s: device %d of %d: %w", op, device, len(h.adapters), ErrInvalidDevice)
	}
	return nil
}

// HasAccelerator reports whether a Vulkan device is ready for use.
func (h *Hooks) HasAccelerator() bool {
	return h.Initialize() == nil
}

// HasCompute reports whether the default device accepted the compute probe
// kernel.
func (h *Hooks) HasCompute() bool {
	if h.Initialize() != nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasCompute
}

// SupportsPinnedMemory reports whether host-visible buffer allocation is
// available.
func (h *Hooks) SupportsPinnedMemory() bool {
	return h.Initialize() == nil
}

// DeviceCount returns the number of visible adapters, 0 when initialization
// failed.
func (h *Hooks) DeviceCount() int {
	if h.Initialize() != nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.adapters)
}

// CurrentDevice returns the active device index, accel.InvalidDevice when
// initialization failed.
func (h *Hooks) CurrentDevice() int {
	if h.Initialize() != nil {
		return accel.InvalidDevice
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// NewGenerator creates a random number generator bound to device. The
// caller owns the generator.
func (h *Hooks) NewGenerator(device int) (accel.Generator, error) {
	if err := h.Initialize(); err != nil {
		return nil, fmt.Errorf("wgpu: NewGenerator: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkDeviceLocked("NewGenerator", device); err != nil {
		return nil, err
	}
	return newGenerator(device, defaultSeed()), nil
}

// NewPinnedAllocator creates an allocator for host-visible memory on the
// current device. The caller owns the allocator.
func (h *Hooks) NewPinnedAllocator() (accel.Allocator, error) {
	if err := h.Initialize(); err != nil {
		return nil, fmt.Errorf("wgpu: NewPinnedAllocator: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	dev, err := h.ensureDeviceLocked(h.current)
	if err != nil {
		return nil, fmt.Errorf("wgpu: NewPinnedAllocator: open device %d: %w", h.current, err)
	}
	return &pinnedAllocator{
		device:  dev.device,
		maxSize: gputypes.DefaultLimits().MaxBufferSize,
	}, nil
}

// DeviceProperties returns the properties of the given device.
func (h *Hooks) DeviceProperties(device int) (*accel.DeviceProperties, error) {
	if err := h.Initialize(); err != nil {
		return nil, fmt.Errorf("wgpu: DeviceProperties: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkDeviceLocked("DeviceProperties", device); err != nil {
		return nil, err
	}

	info := h.adapters[device].Info
	lim := gputypes.DefaultLimits()
	return &accel.DeviceProperties{
		Name:          info.Name,
		Kind:          deviceKind(info.DeviceType),
		MaxBufferSize: lim.MaxBufferSize,
		MaxWorkgroupSize: [3]uint32{
			lim.MaxComputeWorkgroupSizeX,
			lim.MaxComputeWorkgroupSizeY,
			lim.MaxComputeWorkgroupSizeZ,
		},
	}, nil
}

// deviceKind maps adapter device types onto the accel classification.
func deviceKind(t gputypes.DeviceType) accel.DeviceKind {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return accel.DeviceKindDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return accel.DeviceKindIntegrated
	default:
		return accel.DeviceKindUnknown
	}
}

// CurrentStream returns the command stream handle for device. The queue
// opened with each device is its single stream; the handle is stable and
// nonzero for the process lifetime.
func (h *Hooks) CurrentStream(device int) (accel.StreamHandle, error) {
	if err := h.Initialize(); err != nil {
		return 0, fmt.Errorf("wgpu: CurrentStream: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkDeviceLocked("CurrentStream", device); err != nil {
		return 0, err
	}
	if _, err := h.ensureDeviceLocked(device); err != nil {
		return 0, fmt.Errorf("wgpu: CurrentStream: open device %d: %w", device, err)
	}
	return accel.StreamHandle(device + 1), nil
}

// CurrentSparseHandle fails: there is no sparse math runtime on this
// backend.
func (h *Hooks) CurrentSparseHandle(device int) (accel.SparseHandle, error) {
	return 0, fmt.Errorf("wgpu: CurrentSparseHandle: device %d: %w", device, ErrNoSparse)
}

// PlanCacheMaxSize returns the capacity of the kernel plan cache.
func (h *Hooks) PlanCacheMaxSize() (int, error) {
	if err := h.Initialize(); err != nil {
		return 0, fmt.Errorf("wgpu: PlanCacheMaxSize: %w", err)
	}
	return h.plans.maxSize(), nil
}

// SetPlanCacheMaxSize resizes the kernel plan cache, releasing the least
// recently used shader modules if the new capacity is smaller.
func (h *Hooks) SetPlanCacheMaxSize(size int) error {
	if size < 1 {
		return fmt.Errorf("wgpu: SetPlanCacheMaxSize: capacity %d: %w", size, ErrInvalidCacheSize)
	}
	if err := h.Initialize(); err != nil {
		return fmt.Errorf("wgpu: SetPlanCacheMaxSize: %w", err)
	}
	h.plans.resize(size)
	return nil
}

// PlanCacheSize returns the number of cached kernel plans.
func (h *Hooks) PlanCacheSize() (int, error) {
	if err := h.Initialize(); err != nil {
		return 0, fmt.Errorf("wgpu: PlanCacheSize: %w", err)
	}
	return h.plans.size(), nil
}

// ClearPlanCache releases all cached kernel plans.
func (h *Hooks) ClearPlanCache() error {
	if err := h.Initialize(); err != nil {
		return fmt.Errorf("wgpu: ClearPlanCache: %w", err)
	}
	h.plans.clear()
	return nil
}

// CompileKernel compiles a WGSL compute kernel through the plan cache and
// passes its shader module to fn. Repeated calls with the same source hit
// the cache. The module is owned by the cache and guaranteed valid only for
// the duration of fn; fn must not retain or destroy it. A nil fn just warms
// the cache.
func (h *Hooks) CompileKernel(source string, fn func(hal.ShaderModule) error) error {
	if err := h.Initialize(); err != nil {
		return fmt.Errorf("wgpu: CompileKernel: %w", err)
	}
	module, release, err := h.plans.lookup(source)
	if err != nil {
		return fmt.Errorf("wgpu: CompileKernel: %w", err)
	}
	defer release()

	if fn == nil {
		return nil
	}
	return fn(module)
}

// setDevice switches the active device, opening it on first use.
// Installed as the direct dispatch setter.
func (h *Hooks) setDevice(device int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkDeviceLocked("SetDevice", device); err != nil {
		return err
	}
	if _, err := h.ensureDeviceLocked(device); err != nil {
		return fmt.Errorf("wgpu: SetDevice: open device %d: %w", device, err)
	}
	h.current = device
	return nil
}

// getDevice returns the active device index.
// Installed as the direct dispatch getter.
func (h *Hooks) getDevice() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// uncheckedSetDevice switches the active device without validation or
// device opening. Installed as the direct dispatch unchecked setter.
func (h *Hooks) uncheckedSetDevice(device int) {
	h.mu.Lock()
	h.current = device
	h.mu.Unlock()
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShaderCompile, err)
	}
	return spirvToWords(spirvBytes)
}

// spirvToWords converts little-endian SPIR-V bytes to words.
func spirvToWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d not word-aligned", ErrShaderCompile, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}
