package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/MrGo2008/torch/accel"
)

// pinnedAllocator allocates host-visible buffers on one device. Buffers are
// mappable from the host and usable as copy endpoints, which is what staged
// host-to-device transfers need.
type pinnedAllocator struct {
	device  hal.Device
	maxSize uint64
}

var _ accel.Allocator = (*pinnedAllocator)(nil)

// Alloc allocates size bytes of host-visible memory. The returned buffer is
// caller-owned and must be released.
func (a *pinnedAllocator) Alloc(size int) (accel.Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("wgpu: Alloc: size %d: %w", size, ErrInvalidSize)
	}
	if uint64(size) > a.maxSize {
		return nil, fmt.Errorf("wgpu: Alloc: size %d exceeds device limit %d: %w", size, a.maxSize, ErrInvalidSize)
	}

	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pinned",
		Size:  uint64(size),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite |
			gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: Alloc: create buffer: %w", err)
	}

	return &pinnedBuffer{device: a.device, buffer: buf, size: size}, nil
}

// pinnedBuffer is one host-visible allocation.
type pinnedBuffer struct {
	device hal.Device
	buffer hal.Buffer
	size   int
}

var _ accel.Buffer = (*pinnedBuffer)(nil)

// Size returns the allocation size in bytes.
func (b *pinnedBuffer) Size() int { return b.size }

// Release frees the buffer. Safe to call once; the buffer must not be used
// afterwards.
func (b *pinnedBuffer) Release() {
	if b.buffer != nil {
		b.device.DestroyBuffer(b.buffer)
		b.buffer = nil
	}
}
