package torch

import (
	"errors"
	"testing"

	"github.com/MrGo2008/torch/accel"
)

// These tests run without a backend package imported, so the accelerator
// layer resolves to its stub and every answer is deterministic.

func TestGlobalContextIdentity(t *testing.T) {
	a := GlobalContext()
	b := GlobalContext()
	if a == nil {
		t.Fatal("GlobalContext() returned nil")
	}
	if a != b {
		t.Error("GlobalContext() returned different instances")
	}
}

func TestContextQueriesWithoutBackend(t *testing.T) {
	ctx := GlobalContext()

	if ctx.HasAccelerator() {
		t.Error("HasAccelerator() = true, want false without a backend")
	}
	if ctx.HasCompute() {
		t.Error("HasCompute() = true, want false without a backend")
	}
	if ctx.SupportsPinnedMemory() {
		t.Error("SupportsPinnedMemory() = true, want false without a backend")
	}
	if got := ctx.DeviceCount(); got != 0 {
		t.Errorf("DeviceCount() = %d, want 0 without a backend", got)
	}
	if got := ctx.CurrentDevice(); got != accel.InvalidDevice {
		t.Errorf("CurrentDevice() = %d, want %d without a backend", got, accel.InvalidDevice)
	}
}

func TestContextSetDeviceWithoutBackend(t *testing.T) {
	// The hot-path setter defaults to a no-op: callers may set the device
	// unconditionally without guarding on backend presence.
	if err := GlobalContext().SetDevice(2); err != nil {
		t.Errorf("SetDevice(2) = %v, want nil without a backend", err)
	}
}

func TestContextActionsFailWithoutBackend(t *testing.T) {
	ctx := GlobalContext()

	tests := []struct {
		name string
		call func() error
	}{
		{"InitAccelerator", func() error { return ctx.InitAccelerator() }},
		{"NewGenerator", func() error { _, err := ctx.NewGenerator(0); return err }},
		{"PinnedAllocator", func() error { _, err := ctx.PinnedAllocator(); return err }},
		{"DeviceProperties", func() error { _, err := ctx.DeviceProperties(0); return err }},
		{"CurrentStream", func() error { _, err := ctx.CurrentStream(0); return err }},
		{"CurrentSparseHandle", func() error { _, err := ctx.CurrentSparseHandle(0); return err }},
		{"PlanCacheMaxSize", func() error { _, err := ctx.PlanCacheMaxSize(); return err }},
		{"SetPlanCacheMaxSize", func() error { return ctx.SetPlanCacheMaxSize(16) }},
		{"PlanCacheSize", func() error { _, err := ctx.PlanCacheSize(); return err }},
		{"ClearPlanCache", func() error { return ctx.ClearPlanCache() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatalf("%s succeeded, want error without a backend", tt.name)
			}
			if !errors.Is(err, accel.ErrUnsupportedBackend) {
				t.Errorf("%s error = %v, want ErrUnsupportedBackend", tt.name, err)
			}
		})
	}
}

func TestContextInitAcceleratorStableResult(t *testing.T) {
	ctx := GlobalContext()

	first := ctx.InitAccelerator()
	second := ctx.InitAccelerator()
	if !errors.Is(second, accel.ErrUnsupportedBackend) {
		t.Errorf("second InitAccelerator() = %v, want ErrUnsupportedBackend", second)
	}
	if first.Error() != second.Error() {
		t.Errorf("InitAccelerator() results differ: %v vs %v", first, second)
	}
}
