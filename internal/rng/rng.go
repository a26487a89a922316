// Package rng provides the injectable randomness source used wherever
// the counselor picks among equivalent phrasings. Randomization exists
// only to avoid robotic repetition; components take the interface so
// tests can substitute a deterministic sequence.
package rng

import (
	"math/rand"
	"sync"
)

// Rand is the subset of math/rand.Rand the counselor needs.
type Rand interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int

	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

// locked wraps a *rand.Rand with a mutex. math/rand.Rand is not safe
// for concurrent use, and the orchestrator serves concurrent requests.
type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Default returns a concurrency-safe, auto-seeded source.
func Default() Rand {
	return &locked{r: rand.New(rand.NewSource(int64(rand.Uint64())))}
}

// Seeded returns a concurrency-safe source with a fixed seed, for
// reproducible selection in tests.
func Seeded(seed uint64) Rand {
	return &locked{r: rand.New(rand.NewSource(int64(seed)))}
}

// Script is a deterministic Rand fed from fixed value slices. Tests use
// it to force a specific branch: IntN returns Ints values modulo n in
// order (then zero), Float64 returns Floats values in order (then 1.0,
// which fails every probability check).
type Script struct {
	mu     sync.Mutex
	Ints   []int
	Floats []float64
	iIdx   int
	fIdx   int
}

// IntN returns the next scripted int clamped to [0, n).
func (s *Script) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.iIdx >= len(s.Ints) {
		return 0
	}
	v := s.Ints[s.iIdx] % n
	s.iIdx++
	return v
}

// Float64 returns the next scripted float, or 1.0 when exhausted.
func (s *Script) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fIdx >= len(s.Floats) {
		return 1.0
	}
	v := s.Floats[s.fIdx]
	s.fIdx++
	return v
}
