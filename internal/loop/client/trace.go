package client

import (
	"github.com/tomz197/shipdash/internal/draw"
	"github.com/tomz197/shipdash/internal/loop/server"
)

// Speed trend plot geometry and vertical range.
const (
	traceWidth = 36
	traceRows  = 3
	traceLow   = 6.0
	traceHigh  = 12.0
)

// speedTrace keeps one speed sample per speed tick for the trend plot.
type speedTrace struct {
	samples  []float64 // Oldest first
	capacity int
	lastTick uint64
	canvas   *draw.Canvas
}

func newSpeedTrace(width, rows int) *speedTrace {
	return &speedTrace{
		capacity: width,
		canvas:   draw.NewCanvas(width, rows),
	}
}

// observe records the snapshot's speed unless its tick was already seen.
func (t *speedTrace) observe(snap *server.Snapshot) {
	if len(t.samples) > 0 && snap.Ticks.Speed == t.lastTick {
		return
	}
	t.lastTick = snap.Ticks.Speed
	t.samples = append(t.samples, snap.Ship.Speed)
	if len(t.samples) > t.capacity {
		t.samples = t.samples[len(t.samples)-t.capacity:]
	}
}

// lines renders the plot.
func (t *speedTrace) lines() []string {
	t.canvas.Clear()
	t.canvas.Plot(t.samples, traceLow, traceHigh)
	return t.canvas.Lines()
}
