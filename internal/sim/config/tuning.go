package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the controller constants. Default returns the canonical values;
// a YAML file can override any subset of them.
type Tuning struct {
	TriggerLow  float64 `yaml:"trigger_low"`
	TriggerHigh float64 `yaml:"trigger_high"`
	CruiseLow   float64 `yaml:"cruise_low"`
	CruiseHigh  float64 `yaml:"cruise_high"`

	CorrectionMin float64 `yaml:"correction_min"`
	CorrectionMax float64 `yaml:"correction_max"`
	DriftMax      float64 `yaml:"drift_max"`

	OverrideAcceleration float64       `yaml:"override_acceleration"`
	OverrideDuration     time.Duration `yaml:"override_duration"`

	FuelBurnRate float64 `yaml:"fuel_burn_rate"`

	// BurnDuringOverride makes manual overrides burn fuel too. Some dashboard
	// revisions only burned fuel while correcting.
	BurnDuringOverride bool `yaml:"burn_during_override"`

	SpeedInterval    time.Duration `yaml:"speed_interval"`
	DistanceInterval time.Duration `yaml:"distance_interval"`
	GravityInterval  time.Duration `yaml:"gravity_interval"`
	PowerInterval    time.Duration `yaml:"power_interval"`
	RefreshInterval  time.Duration `yaml:"refresh_interval"`

	// Messages replaces status texts by code, e.g. {speed: "Holding cruise"}.
	// Codes left out keep their built-in text.
	Messages map[string]string `yaml:"messages,omitempty"`
}

// Default returns the canonical tuning.
func Default() Tuning {
	return Tuning{
		TriggerLow:           TriggerLow,
		TriggerHigh:          TriggerHigh,
		CruiseLow:            CruiseLow,
		CruiseHigh:           CruiseHigh,
		CorrectionMin:        CorrectionMin,
		CorrectionMax:        CorrectionMax,
		DriftMax:             DriftMax,
		OverrideAcceleration: OverrideAcceleration,
		OverrideDuration:     OverrideDuration,
		FuelBurnRate:         FuelBurnRate,
		BurnDuringOverride:   true,
		SpeedInterval:        SpeedInterval,
		DistanceInterval:     DistanceInterval,
		GravityInterval:      GravityInterval,
		PowerInterval:        PowerInterval,
		RefreshInterval:      RefreshInterval,
	}
}

// Load reads a YAML tuning file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning on top of the defaults and validates the result.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks that the bands nest and that ranges and cadences are usable.
func (t Tuning) Validate() error {
	switch {
	case !(t.TriggerLow < t.CruiseLow):
		return fmt.Errorf("%w: trigger_low %.2f must be below cruise_low %.2f", ErrInvalidTuning, t.TriggerLow, t.CruiseLow)
	case !(t.CruiseLow <= t.CruiseHigh):
		return fmt.Errorf("%w: cruise_low %.2f must not exceed cruise_high %.2f", ErrInvalidTuning, t.CruiseLow, t.CruiseHigh)
	case !(t.CruiseHigh < t.TriggerHigh):
		return fmt.Errorf("%w: cruise_high %.2f must be below trigger_high %.2f", ErrInvalidTuning, t.CruiseHigh, t.TriggerHigh)
	case t.CorrectionMin <= 0 || t.CorrectionMin > t.CorrectionMax:
		return fmt.Errorf("%w: correction range [%.2f, %.2f]", ErrInvalidTuning, t.CorrectionMin, t.CorrectionMax)
	case t.DriftMax < 0:
		return fmt.Errorf("%w: drift_max %.2f is negative", ErrInvalidTuning, t.DriftMax)
	case t.OverrideAcceleration < 0:
		return fmt.Errorf("%w: override_acceleration %.2f is negative", ErrInvalidTuning, t.OverrideAcceleration)
	case t.FuelBurnRate < 0:
		return fmt.Errorf("%w: fuel_burn_rate %.4f is negative", ErrInvalidTuning, t.FuelBurnRate)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"override_duration", t.OverrideDuration},
		{"speed_interval", t.SpeedInterval},
		{"distance_interval", t.DistanceInterval},
		{"gravity_interval", t.GravityInterval},
		{"power_interval", t.PowerInterval},
		{"refresh_interval", t.RefreshInterval},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidTuning, d.name, d.d)
		}
	}

	for code, msg := range t.Messages {
		if strings.TrimSpace(msg) == "" {
			return fmt.Errorf("%w: message for %q is empty", ErrInvalidTuning, code)
		}
	}
	return nil
}
