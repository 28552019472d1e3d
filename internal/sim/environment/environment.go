// Package environment holds the ambient readings around the ship.
package environment

import (
	"math"

	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/random"
)

// SpeedReader is the read-only view of the ship the environment needs.
type SpeedReader interface {
	Speed() float64
}

// State is a read-only copy of the readings.
type State struct {
	Gravity  float64 `json:"gravity"`
	Distance float64 `json:"distance"`
	Power    int     `json:"power"`
}

// Environment holds gravity, distance travelled and power output.
// Not safe for concurrent use.
type Environment struct {
	gravity  float64
	distance float64
	power    int

	ship SpeedReader
	rng  random.Source
}

// New creates an environment with randomized readings that accumulates
// distance from ship.
func New(ship SpeedReader, rng random.Source) *Environment {
	e := &Environment{ship: ship, rng: rng}
	e.gravity = rng.Uniform(config.GravityMin, config.GravityMax)
	e.distance = rng.Uniform(config.DistanceMin, config.DistanceMax)
	e.power = e.samplePower()
	return e
}

// FromState creates an environment with the given readings.
func FromState(ship SpeedReader, rng random.Source, st State) *Environment {
	return &Environment{
		gravity:  st.Gravity,
		distance: st.Distance,
		power:    st.Power,
		ship:     ship,
		rng:      rng,
	}
}

// UpdateDistance adds one time unit of travel at the ship's current speed.
// Callers must invoke it once per config.DistanceInterval.
func (e *Environment) UpdateDistance() float64 {
	e.distance += e.ship.Speed()
	return e.distance
}

// UpdateGravity resamples the gravity reading.
func (e *Environment) UpdateGravity() float64 {
	e.gravity = e.rng.Uniform(config.GravityMin, config.GravityMax)
	return e.gravity
}

// UpdatePower resamples the power reading.
func (e *Environment) UpdatePower() int {
	e.power = e.samplePower()
	return e.power
}

func (e *Environment) samplePower() int {
	return int(math.Round(e.rng.Uniform(config.PowerMin, config.PowerMax)))
}

// Snapshot returns a copy of the readings.
func (e *Environment) Snapshot() State {
	return State{
		Gravity:  e.gravity,
		Distance: e.distance,
		Power:    e.power,
	}
}

func (e *Environment) Gravity() float64  { return e.gravity }
func (e *Environment) Distance() float64 { return e.distance }
func (e *Environment) Power() int        { return e.power }
