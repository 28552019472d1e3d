// Package readout formats vitals for display.
package readout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomz197/shipdash/internal/sim/environment"
	"github.com/tomz197/shipdash/internal/sim/ship"
)

// Line is one labelled reading. Alert marks readings that should show a
// warning indicator.
type Line struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
	Alert bool   `json:"alert"`
}

// Percent renders a [0,1] ratio as a percentage with one decimal.
func Percent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 1, 64)
}

// Speed renders two decimals, zero-padded to two integer digits.
func Speed(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	if f >= 0 && f < 10 {
		s = "0" + s
	}
	return s
}

// Acceleration renders two decimals with an explicit sign.
func Acceleration(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// Gravity renders two decimals.
func Gravity(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Distance renders whole units.
func Distance(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}

// Power renders the integer reading.
func Power(p int) string {
	return strconv.Itoa(p)
}

// Lines returns every reading in display order. Speed and acceleration are
// flagged while the automatic correction runs.
func Lines(s ship.State, e environment.State) []Line {
	return []Line{
		{Name: "speed", Label: "Speed", Value: Speed(s.Speed), Unit: "km/s", Alert: s.Boosting},
		{Name: "acceleration", Label: "Acceleration", Value: Acceleration(s.Acceleration), Unit: "km/s²", Alert: s.Boosting},
		{Name: "fuel", Label: "Fuel", Value: Percent(s.Fuel), Unit: "%"},
		{Name: "oxygen", Label: "Oxygen", Value: Percent(s.Oxygen), Unit: "%"},
		{Name: "gravity", Label: "Gravity", Value: Gravity(e.Gravity), Unit: "G"},
		{Name: "distance", Label: "Distance", Value: Distance(e.Distance), Unit: "km"},
		{Name: "power", Label: "Power", Value: Power(e.Power), Unit: "kW"},
	}
}

// Override describes the manual override for a status line.
func Override(s ship.State) string {
	switch {
	case !s.ManualOverrideActive:
		return "manual override: off"
	case s.ManualOverrideAcceleration >= 0:
		return fmt.Sprintf("manual override: boost %s", Acceleration(s.ManualOverrideAcceleration))
	default:
		return fmt.Sprintf("manual override: brake %s", Acceleration(s.ManualOverrideAcceleration))
	}
}
