package wgpu

import (
	"sync"
	"time"

	"github.com/MrGo2008/torch/accel"
)

// generator is a SplitMix64 random number generator bound to a device.
// Kernel launches seed per-thread streams from values drawn here, so the
// sequence must be reproducible from the seed alone.
type generator struct {
	mu     sync.Mutex
	device int
	seed   uint64
	state  uint64
}

var _ accel.Generator = (*generator)(nil)

func newGenerator(device int, seed uint64) *generator {
	return &generator{device: device, seed: seed, state: seed}
}

// defaultSeed derives a seed for a fresh generator.
func defaultSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Device returns the device index the generator is bound to.
func (g *generator) Device() int { return g.device }

// InitialSeed returns the seed the generator was created with or last
// reseeded to.
func (g *generator) InitialSeed() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed
}

// ManualSeed reseeds the generator and resets its state.
func (g *generator) ManualSeed(seed uint64) {
	g.mu.Lock()
	g.seed = seed
	g.state = seed
	g.mu.Unlock()
}

// Uint64 returns the next value in the SplitMix64 stream.
func (g *generator) Uint64() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state += 0x9E3779B97F4A7C15
	z := g.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
