// Package random provides the injectable "next value" sources used for
// duration jitter. Nothing in the planner reads a global generator.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler yields values in [0, 1)
type Sampler interface {
	Next() float64
}

// Intn maps the next sample onto [0, n). n <= 0 yields 0.
func Intn(s Sampler, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Next() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Fixed always returns the same value. Used by tests to pin jitter.
type Fixed float64

// Next implements Sampler.
func (f Fixed) Next() float64 {
	return float64(f)
}

// Sequence replays values in order and wraps around.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

// NewSequence creates a replaying sampler; it panics on an empty sequence.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		panic("random: empty sequence")
	}
	return &Sequence{values: values}
}

// Next implements Sampler.
func (s *Sequence) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Seeded draws from a uniform distribution over a PCG source. Safe for
// concurrent use.
type Seeded struct {
	mu   sync.Mutex
	seed uint64
	dist distuv.Uniform
}

// NewSeeded creates a production sampler with a reproducible seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		dist: distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(seed)},
	}
}

// Seed returns the seed the sampler was created with.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// Next implements Sampler.
func (s *Seeded) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.dist.Rand()
	if v >= 1 {
		// Uniform.Rand is Min + (Max-Min)*Float64() and Float64 is [0,1);
		// rounding can still land on Max.
		v = 0
	}
	return v
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
