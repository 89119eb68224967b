package accel

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrUnsupportedBackend is returned by action operations when no
	// accelerator backend is linked into the binary. Errors wrapping it
	// always name the operation that was attempted.
	ErrUnsupportedBackend = errors.New("accel: no accelerator backend linked")

	// ErrNotRegistered is returned by New when no factory is registered
	// under the requested name. Active() consumes it internally and falls
	// back to the stub; it never reaches end users.
	ErrNotRegistered = errors.New("accel: backend not registered")
)

// unsupported builds the error for an action invoked on the stub.
// The operation name is part of the message so callers can tell
// "backend not linked" apart from "backend present but broken".
func unsupported(op string) error {
	return fmt.Errorf("accel: cannot %s without an accelerator backend (import a backend package, e.g. accel/wgpu): %w",
		op, ErrUnsupportedBackend)
}
