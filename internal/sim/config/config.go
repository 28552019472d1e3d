// Package config centralizes all tunable simulation parameters.
package config

import "time"

// Speed controller thresholds. Leaving [TriggerLow, TriggerHigh] starts a
// correction; only re-entering [CruiseLow, CruiseHigh] ends it.
const (
	TriggerLow  = 7.0
	TriggerHigh = 11.0
	CruiseLow   = 8.0
	CruiseHigh  = 10.0
)

// Per-tick speed deltas.
const (
	CorrectionMin = 0.20 // Magnitude of an automatic correction
	CorrectionMax = 0.25
	DriftMax      = 0.1 // Free drift is uniform in [-DriftMax, DriftMax]
)

// Manual override
const (
	OverrideAcceleration = 0.2
	OverrideDuration     = 1500 * time.Millisecond
)

// Fuel
const (
	FuelBurnRate = 0.001 // Fuel per unit of |acceleration|
)

// Initial readings
const (
	OxygenMin   = 0.90
	OxygenMax   = 0.95
	FuelMin     = 0.95
	FuelMax     = 1.00
	SpeedMin    = 7.0
	SpeedMax    = 11.0
	GravityMin  = 1.00
	GravityMax  = 1.05
	DistanceMin = 2000.0
	DistanceMax = 10000.0
	PowerMin    = 300.0
	PowerMax    = 400.0
)

// Scheduler cadences. Distance is measured per second, so DistanceInterval
// must stay at one second for the reading to mean anything.
const (
	SpeedInterval    = 500 * time.Millisecond
	DistanceInterval = time.Second
	GravityInterval  = time.Second
	PowerInterval    = 700 * time.Millisecond
	RefreshInterval  = 200 * time.Millisecond
)

// Terminal client
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
	ShutdownDisplaySeconds   = 5.0 // Seconds to show shutdown message before auto-disconnect
)
