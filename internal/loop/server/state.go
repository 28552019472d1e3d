package server

import (
	"time"

	"github.com/tomz197/shipdash/internal/readout"
	"github.com/tomz197/shipdash/internal/sim/environment"
	"github.com/tomz197/shipdash/internal/sim/ship"
	"github.com/tomz197/shipdash/internal/sim/status"
)

// Ticks counts how many times each update has run.
type Ticks struct {
	Speed    uint64 `json:"speed"`
	Distance uint64 `json:"distance"`
	Gravity  uint64 `json:"gravity"`
	Power    uint64 `json:"power"`
}

// Snapshot is an immutable copy of everything a dashboard renders.
// A new one is published after every mutation.
type Snapshot struct {
	Ship        ship.State        `json:"ship"`
	Environment environment.State `json:"environment"`
	Phase       string            `json:"phase"`
	Message     string            `json:"message"`
	Codes       []status.Code     `json:"codes"`
	Readouts    []readout.Line    `json:"readouts"`
	Override    string            `json:"override"`
	Ticks       Ticks             `json:"ticks"`
	Seed        uint64            `json:"seed"`
	Clients     int               `json:"clients"`
	TakenAt     time.Time         `json:"takenAt"`
}
