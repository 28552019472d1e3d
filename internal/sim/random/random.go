// Package random provides the seedable uniform source the simulation draws from.
package random

import (
	"math/rand/v2"
	"time"
)

// Source supplies uniform values in [min, max).
type Source interface {
	Uniform(min, max float64) float64
}

// PCG is a Source backed by a seeded PCG generator. Not safe for concurrent
// use; the server serializes every draw.
type PCG struct {
	rnd  *rand.Rand
	seed uint64
}

// NewSource creates a PCG source. A zero seed picks one from the wall clock.
func NewSource(seed uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PCG{
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed in use so a run can be replayed.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// Uniform returns a value in [min, max).
func (p *PCG) Uniform(min, max float64) float64 {
	return min + p.rnd.Float64()*(max-min)
}

// Scripted replays fixed unit values, mapping each onto the requested range.
// Values wrap around when exhausted. Used to pin down controller branches.
type Scripted struct {
	Units []float64
	next  int
}

// Uniform maps the next scripted unit value u onto min + u*(max-min).
func (s *Scripted) Uniform(min, max float64) float64 {
	if len(s.Units) == 0 {
		return min
	}
	u := s.Units[s.next%len(s.Units)]
	s.next++
	return min + u*(max-min)
}

// Calls reports how many values have been drawn.
func (s *Scripted) Calls() int {
	return s.next
}
