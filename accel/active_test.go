package accel

import (
	"sync"
	"testing"
)

func TestActiveReturnsStubWithoutBackend(t *testing.T) {
	resetActive()
	t.Cleanup(resetActive)

	h := Active()
	if h == nil {
		t.Fatal("Active() returned nil")
	}
	if _, ok := h.(StubHooks); !ok {
		t.Fatalf("Active() = %T, want StubHooks when no backend is registered", h)
	}
}

func TestActiveIdentity(t *testing.T) {
	resetActive()
	t.Cleanup(resetActive)

	first := Active()
	second := Active()
	if first != second {
		t.Error("Active() returned different instances across calls")
	}
}

func TestActiveConcurrentFirstAccess(t *testing.T) {
	resetActive()
	t.Cleanup(func() {
		Unregister("concurrent-backend")
		resetActive()
	})

	var constructed int
	var mu sync.Mutex
	Register("concurrent-backend", func() Hooks {
		mu.Lock()
		constructed++
		mu.Unlock()
		return &fakeHooks{}
	})

	const goroutines = 16
	results := make([]Hooks, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = Active()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d observed a different instance", i)
		}
	}
	if constructed != 1 {
		t.Errorf("factory ran %d times, want 1", constructed)
	}
}

func TestActivePicksRegisteredBackend(t *testing.T) {
	resetActive()
	t.Cleanup(func() {
		Unregister(BackendWGPU)
		resetActive()
	})

	Register(BackendWGPU, func() Hooks { return &fakeHooks{devices: 2} })

	h := Active()
	if !h.HasAccelerator() {
		t.Error("HasAccelerator() = false, want true after backend registration")
	}
	if got := h.DeviceCount(); got != 2 {
		t.Errorf("DeviceCount() = %d, want 2", got)
	}

	// All subsequent calls keep returning the backend instance.
	if Active() != h {
		t.Error("Active() did not return the same backend instance")
	}
}

func TestActiveSkipsNilFactory(t *testing.T) {
	resetActive()
	t.Cleanup(func() {
		Unregister(BackendWGPU)
		resetActive()
	})

	// A backend built without its tag may register a nil-returning factory
	// so callers degrade gracefully.
	Register(BackendWGPU, func() Hooks { return nil })

	h := Active()
	if _, ok := h.(StubHooks); !ok {
		t.Fatalf("Active() = %T, want StubHooks when factory returns nil", h)
	}
}

func TestActiveFallbackDeterministic(t *testing.T) {
	t.Cleanup(func() {
		Unregister("zeta-backend")
		Unregister("alpha-backend")
		resetActive()
	})

	// Neither name is on the priority list; the name-ordered fallback must
	// pick the same backend on every resolution.
	Register("zeta-backend", func() Hooks { return &fakeHooks{devices: 9} })
	Register("alpha-backend", func() Hooks { return &fakeHooks{devices: 3} })

	for i := 0; i < 10; i++ {
		resetActive()
		if got := Active().DeviceCount(); got != 3 {
			t.Fatalf("resolution %d: DeviceCount() = %d, want 3 (first name in order)", i, got)
		}
	}
}

func TestActivePrefersPriorityOrder(t *testing.T) {
	resetActive()
	t.Cleanup(func() {
		Unregister(BackendWGPU)
		Unregister("other-backend")
		resetActive()
	})

	Register("other-backend", func() Hooks { return &fakeHooks{devices: 1} })
	Register(BackendWGPU, func() Hooks { return &fakeHooks{devices: 4} })

	h := Active()
	if got := h.DeviceCount(); got != 4 {
		t.Errorf("DeviceCount() = %d, want 4 (priority backend should win)", got)
	}
}
