package client

import (
	"fmt"
	"time"

	"github.com/tomz197/shipdash/internal/draw"
	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/readout"
	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/status"
)

// Panel geometry in terminal cells.
const (
	panelInnerWidth  = 46
	panelInnerHeight = 21
	gaugeWidth       = 24
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On view or inactivity transitions, do a full terminal clear
	// so UI elements from the previous view don't persist on screen.
	viewChanged := c.state.View != c.state.prevView
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if viewChanged || inactiveChanged {
		c.panel.Clear()
		c.state.prevView = c.state.View
		c.state.wasInactive = c.state.isInactive
	}

	c.panel.Frame("SHIP VITALS")

	switch {
	case c.state.View == ViewShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	default:
		c.drawDashboard(c.server.GetSnapshot())
	}

	return c.panel.Flush()
}

// drawDashboard draws the live vitals.
func (c *Client) drawDashboard(snap *server.Snapshot) {
	p := c.panel
	p.Line(1, "")

	row := 2
	for _, l := range snap.Readouts {
		p.Line(row, fmt.Sprintf("   %-14s %10s %s", l.Label, l.Value, l.Unit))
		p.Text(2, row, draw.Indicator(l.Alert))
		row++
	}
	p.Line(row, "")
	row++

	p.Gauge(row, "Fuel", snap.Ship.Fuel, gaugeWidth, readout.Percent(snap.Ship.Fuel)+"%")
	row++
	p.Gauge(row, "Oxygen", snap.Ship.Oxygen, gaugeWidth, readout.Percent(snap.Ship.Oxygen)+"%")
	row++
	p.Line(row, "")
	row++

	c.trace.observe(snap)
	for i, l := range c.trace.lines() {
		label := ""
		if i == 0 {
			label = "Trend"
		}
		p.Line(row, fmt.Sprintf(" %-8s%s", label, l))
		row++
	}
	p.Line(row, "")
	row++

	if len(snap.Codes) > 0 && snap.Codes[0] != status.Nominal {
		p.ColorLine(row, draw.Amber, " Status: "+snap.Message)
	} else {
		p.Line(row, " Status: "+snap.Message)
	}
	row++
	p.Line(row, " "+snap.Override)
	row++

	if c.state.Notice != "" {
		p.ColorLine(row, draw.Dim, " "+c.state.Notice)
	} else {
		p.Line(row, "")
	}
	row++
	p.Line(row, " [b] boost   [n] brake   [q] quit")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	p := c.panel
	p.Blank(1, p.Height())
	p.Centered(8, "INACTIVITY WARNING")
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	p.Centered(10, fmt.Sprintf("Disconnecting in %d seconds.", remaining))
	p.Centered(12, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen() {
	p := c.panel
	p.Blank(1, p.Height())
	p.Centered(9, "SERVER SHUTTING DOWN")
	p.Centered(11, fmt.Sprintf("Disconnecting in %d seconds.", int(c.state.shutdownTimer+0.5)))
}
