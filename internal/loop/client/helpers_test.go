package client

import "github.com/tomz197/shipdash/internal/sim/environment"

func environmentState() environment.State {
	return environment.State{Gravity: 1.02, Distance: 4321, Power: 350}
}
