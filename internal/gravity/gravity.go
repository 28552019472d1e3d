// Package gravity converts weights between Earth and Mars gravity.
package gravity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarsGravity is Mars surface gravity relative to Earth.
const MarsGravity = 0.38

// ErrInvalidNumericInput is returned for weights that are not finite numbers.
var ErrInvalidNumericInput = errors.New("gravity conversion value must be a number")

// Planet is the conversion target.
type Planet string

const (
	Earth Planet = "earth"
	Mars  Planet = "mars"
)

// Convert converts weight to the target planet and renders it with two
// decimals. Any target other than Mars converts a Mars weight to Earth.
func Convert(weight string, to Planet) (string, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumericInput, weight)
	}

	var result float64
	if Planet(strings.ToLower(string(to))) == Mars {
		result = w * MarsGravity
	} else {
		result = w / MarsGravity
	}
	return strconv.FormatFloat(result, 'f', 2, 64), nil
}
