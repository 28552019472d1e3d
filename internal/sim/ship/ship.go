// Package ship implements the ship's vitals and its speed controller: a
// hysteresis correction loop that burns fuel, plus a time-boxed manual
// override.
package ship

import (
	"math"

	"github.com/tomz197/shipdash/internal/sim/clock"
	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/random"
	"github.com/tomz197/shipdash/internal/sim/status"
)

// Phase is the state of the automatic correction.
type Phase int

const (
	Cruising   Phase = iota // Free drift inside the safe band
	Correcting              // Steering back toward the cruise band
)

func (p Phase) String() string {
	if p == Correcting {
		return "correcting"
	}
	return "cruising"
}

// Deps are the collaborators a Ship needs.
type Deps struct {
	Random    random.Source
	Scheduler clock.Scheduler
	Status    *status.Registry
	Tuning    config.Tuning
}

// State is a read-only copy of the ship's vitals.
type State struct {
	Oxygen                     float64 `json:"oxygen"`
	Fuel                       float64 `json:"fuel"`
	Speed                      float64 `json:"speed"`
	Acceleration               float64 `json:"acceleration"`
	Boosting                   bool    `json:"boosting"`
	ManualOverrideActive       bool    `json:"manualOverrideActive"`
	ManualOverrideAcceleration float64 `json:"manualOverrideAcceleration"`
}

// Ship holds the vitals. Never update them directly: go through UpdateSpeed
// and BoostManually. Not safe for concurrent use.
type Ship struct {
	oxygen               float64
	fuel                 float64
	speed                float64
	acceleration         float64
	boosting             bool
	overrideActive       bool
	overrideAcceleration float64

	rng       random.Source
	scheduler clock.Scheduler
	status    *status.Registry
	tuning    config.Tuning
}

// New creates a ship with randomized starting vitals.
func New(deps Deps) *Ship {
	s := newShip(deps)
	s.oxygen = deps.Random.Uniform(config.OxygenMin, config.OxygenMax)
	s.fuel = deps.Random.Uniform(config.FuelMin, config.FuelMax)
	s.speed = deps.Random.Uniform(config.SpeedMin, config.SpeedMax)
	return s
}

// FromState creates a ship with the given vitals. Override fields are
// ignored: a ship always starts without an override in flight.
func FromState(deps Deps, st State) *Ship {
	s := newShip(deps)
	s.oxygen = st.Oxygen
	s.fuel = st.Fuel
	s.speed = st.Speed
	s.acceleration = st.Acceleration
	s.boosting = st.Boosting
	return s
}

func newShip(deps Deps) *Ship {
	reg := deps.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Ship{
		rng:       deps.Random,
		scheduler: deps.Scheduler,
		status:    reg,
		tuning:    deps.Tuning,
	}
}

// UpdateSpeed advances the ship one tick and returns the new speed.
func (s *Ship) UpdateSpeed() float64 {
	t := s.tuning

	// Mid-correction ticks outside both branches keep the previous push.
	wiggle := s.acceleration

	switch {
	case s.speed < t.TriggerLow:
		wiggle = s.rng.Uniform(t.CorrectionMin, t.CorrectionMax)
		s.boosting = true
		s.status.Raise(status.Speed)
	case s.speed > t.TriggerHigh:
		wiggle = s.rng.Uniform(-t.CorrectionMax, -t.CorrectionMin)
		s.boosting = true
		s.status.Raise(status.Speed)
	case s.speed >= t.CruiseLow && s.speed <= t.CruiseHigh:
		s.boosting = false
		s.status.Clear(status.Speed)
	}

	if !s.boosting {
		wiggle = s.rng.Uniform(-t.DriftMax, t.DriftMax)
	}

	s.acceleration = wiggle + s.overrideAcceleration
	s.speed += s.acceleration

	if s.burning() {
		s.fuel -= math.Abs(s.acceleration) * t.FuelBurnRate
	}

	return s.speed
}

// burning reports whether this tick consumes fuel.
func (s *Ship) burning() bool {
	if s.boosting {
		return true
	}
	return s.overrideActive && s.tuning.BurnDuringOverride
}

// BoostManually starts a manual override in direction dir. It returns false
// without touching anything when an override is already running or dir is
// not a valid direction. The override expires on its own after
// Tuning.OverrideDuration and cannot be extended.
func (s *Ship) BoostManually(dir Direction) bool {
	if s.overrideActive || !dir.Valid() {
		return false
	}

	s.overrideActive = true
	s.overrideAcceleration = dir.Sign() * s.tuning.OverrideAcceleration
	s.status.Raise(dir.Code())

	s.scheduler.AfterFunc(s.tuning.OverrideDuration, func() {
		s.status.Clear(dir.Code())
		s.overrideAcceleration = 0
		s.overrideActive = false
	})
	return true
}

// Snapshot returns a copy of the vitals.
func (s *Ship) Snapshot() State {
	return State{
		Oxygen:                     s.oxygen,
		Fuel:                       s.fuel,
		Speed:                      s.speed,
		Acceleration:               s.acceleration,
		Boosting:                   s.boosting,
		ManualOverrideActive:       s.overrideActive,
		ManualOverrideAcceleration: s.overrideAcceleration,
	}
}

// Phase reports whether the automatic correction is running.
func (s *Ship) Phase() Phase {
	if s.boosting {
		return Correcting
	}
	return Cruising
}

// Speed returns the current speed.
func (s *Ship) Speed() float64 { return s.speed }

// Fuel returns the remaining fuel. It may go negative; nothing stops the
// controller when the tank is empty.
func (s *Ship) Fuel() float64 { return s.fuel }

// Oxygen returns the oxygen level.
func (s *Ship) Oxygen() float64 { return s.oxygen }

// Acceleration returns the delta applied on the last tick.
func (s *Ship) Acceleration() float64 { return s.acceleration }

// Boosting reports whether the automatic correction is active.
func (s *Ship) Boosting() bool { return s.boosting }

// ManualOverrideActive reports whether a manual override is running.
func (s *Ship) ManualOverrideActive() bool { return s.overrideActive }

// ManualOverrideAcceleration returns the override's per-tick contribution.
func (s *Ship) ManualOverrideAcceleration() float64 { return s.overrideAcceleration }
