package accel

import (
	"sort"
	"sync"
	"sync/atomic"
)

// The single Hooks instance handed out to the whole process. activeOnce
// guards construction; activePtr carries the published instance so other
// code (SetLogger) can observe it without triggering resolution.
var (
	activeOnce sync.Once
	activePtr  atomic.Pointer[Hooks]
)

// Active returns the process-wide Hooks instance.
//
// On first call it walks the backend priority list and takes the first
// registered factory that produces a non-nil implementation; with no usable
// backend it falls back to the stub. Every subsequent call, from any
// goroutine, returns the identical instance: concurrent first callers block
// until the instance is published, so a factory runs at most once.
//
// Callers never own the returned value; it lives for the rest of the
// process.
func Active() Hooks {
	activeOnce.Do(func() {
		h := pickHooks()
		propagateLogger(h, slogger())
		activePtr.Store(&h)
	})
	return *activePtr.Load()
}

// loadedHooks returns the published instance, or nil if Active has not run.
func loadedHooks() Hooks {
	if p := activePtr.Load(); p != nil {
		return *p
	}
	return nil
}

// pickHooks selects the best registered backend, or the stub.
func pickHooks() Hooks {
	for _, name := range backendPriority {
		h, err := New(name)
		if err != nil {
			continue
		}
		if h != nil {
			slogger().Info("accel: using accelerator backend", "name", name)
			return h
		}
	}

	// Fallback: backends registered under names outside the priority list,
	// in name order so selection is deterministic across runs.
	names := Available()
	sort.Strings(names)
	for _, name := range names {
		h, err := New(name)
		if err != nil {
			continue
		}
		if h != nil {
			slogger().Info("accel: using accelerator backend", "name", name)
			return h
		}
	}

	slogger().Debug("accel: no backend registered, using stub")
	return StubHooks{}
}

// resetActive discards the published instance so the next Active() call
// re-resolves. Only for tests in this package; real callers rely on the
// instance being stable for the process lifetime.
func resetActive() {
	activeOnce = sync.Once{}
	activePtr.Store(nil)
}
