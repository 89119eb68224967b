package accel

import (
	"errors"
	"testing"
)

// fakeHooks is a minimal test backend.
type fakeHooks struct {
	StubHooks
	name    string
	devices int
}

func (f *fakeHooks) HasAccelerator() bool { return true }
func (f *fakeHooks) DeviceCount() int     { return f.devices }

func TestRegistryRegisterAndNew(t *testing.T) {
	Register("test-backend", func() Hooks { return &fakeHooks{name: "test-backend"} })
	t.Cleanup(func() { Unregister("test-backend") })

	if !IsRegistered("test-backend") {
		t.Fatal("test-backend should be registered")
	}

	h, err := New("test-backend")
	if err != nil {
		t.Fatalf("New(test-backend) error = %v", err)
	}
	if h == nil {
		t.Fatal("New(test-backend) returned nil")
	}
	if !h.HasAccelerator() {
		t.Error("HasAccelerator() = false, want true")
	}
}

func TestRegistryNewUnregistered(t *testing.T) {
	_, err := New("nonexistent")
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("New(nonexistent) error = %v, want ErrNotRegistered", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	Register("avail-backend", func() Hooks { return &fakeHooks{} })
	t.Cleanup(func() { Unregister("avail-backend") })

	found := false
	for _, name := range Available() {
		if name == "avail-backend" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Available() should include 'avail-backend'")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("gone-backend", func() Hooks { return &fakeHooks{} })

	if !IsRegistered("gone-backend") {
		t.Error("gone-backend should be registered")
	}

	Unregister("gone-backend")

	if IsRegistered("gone-backend") {
		t.Error("gone-backend should be unregistered")
	}
}

func TestRegistryDuplicateLastWins(t *testing.T) {
	t.Cleanup(func() { Unregister("dup-backend") })

	// Repeated to confirm the resolution is deterministic, not racy.
	for i := 0; i < 10; i++ {
		Register("dup-backend", func() Hooks { return &fakeHooks{devices: 1} })
		Register("dup-backend", func() Hooks { return &fakeHooks{devices: 2} })

		h, err := New("dup-backend")
		if err != nil {
			t.Fatalf("New(dup-backend) error = %v", err)
		}
		if got := h.DeviceCount(); got != 2 {
			t.Fatalf("iteration %d: DeviceCount() = %d, want 2 (last registration wins)", i, got)
		}
	}
}

func BenchmarkRegistryNew(b *testing.B) {
	Register("bench-backend", func() Hooks { return &fakeHooks{} })
	defer Unregister("bench-backend")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = New("bench-backend")
	}
}
