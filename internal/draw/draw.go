// Package draw renders text panels to ANSI terminals.
package draw

import (
	"strings"
	"unicode/utf8"
)

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Gauge renders fraction as a bar of width cells. The last partial cell is
// shaded by how full it is.
func Gauge(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := fraction * float64(width)
	full := int(filled)

	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		switch {
		case i < full:
			b.WriteRune(Shades[len(Shades)-1])
		case i == full:
			b.WriteRune(ShadeLevel(filled - float64(full)))
		default:
			b.WriteRune(Shades[0])
		}
	}
	return b.String()
}

// SGR color sequences.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"
	Red   = "\033[31m"
	Green = "\033[32m"
	Amber = "\033[33m"
)

// Colorize wraps s in an SGR sequence.
func Colorize(color, s string) string {
	return color + s + Reset
}

// Indicator is the status dot shown next to a reading.
func Indicator(alert bool) string {
	if alert {
		return Colorize(Red, "●")
	}
	return Colorize(Green, "●")
}

// Pad right-pads s with spaces to width runes. Longer strings are cut.
func Pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}
