package ship

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomz197/shipdash/internal/sim/status"
)

// ErrUnknownDirection is returned by ParseDirection for anything other than
// "boost" or "brake".
var ErrUnknownDirection = errors.New("unknown override direction")

// Direction is the sense of a manual override.
type Direction string

const (
	Boost Direction = "boost"
	Brake Direction = "brake"
)

// ParseDirection validates user input. Case and surrounding space are ignored.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Boost, Brake:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Valid reports whether d is Boost or Brake.
func (d Direction) Valid() bool {
	return d == Boost || d == Brake
}

// Sign is +1 for Boost, -1 for Brake and 0 otherwise.
func (d Direction) Sign() float64 {
	switch d {
	case Boost:
		return 1
	case Brake:
		return -1
	default:
		return 0
	}
}

// Code is the status code raised while the override runs.
func (d Direction) Code() status.Code {
	return status.Code(d)
}

func (d Direction) String() string {
	return string(d)
}
