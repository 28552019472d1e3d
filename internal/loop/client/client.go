// Package client renders the dashboard to a terminal and forwards key
// presses to the server.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/shipdash/internal/draw"
	"github.com/tomz197/shipdash/internal/input"
	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/ship"
)

// noticeSeconds is how long override feedback stays on screen.
const noticeSeconds = 2.0

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.Dashboard
	handle       *server.ClientHandle
	state        *ClientState
	panel        *draw.Panel
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	refresh      time.Duration
	trace        *speedTrace
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc    draw.TermSizeFunc
	Name            string
	RefreshInterval time.Duration // Defaults to config.RefreshInterval
}

// NewClient creates a new client connected to the given server.
func NewClient(ds server.Dashboard, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = config.RefreshInterval
	}

	return &Client{
		server:       ds,
		handle:       ds.RegisterClient(opts.Name),
		state:        NewClientState(),
		panel:        draw.NewPanel(w, panelInnerWidth, panelInnerHeight),
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		refresh:      refresh,
		trace:        newSpeedTrace(traceWidth, traceRows),
	}
}

// Run starts the client loop. Blocks until the client quits, the input
// closes, or the server shuts down.
func (c *Client) Run() error {
	c.panel.HideCursor()
	c.panel.Clear()
	defer func() {
		c.panel.ShowCursor()
		c.panel.Flush()
	}()
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Count down timers
		c.updateTimers()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.refresh {
			time.Sleep(c.refresh - elapsed)
		}
	}

	c.panel.Clear()
	return nil
}

// processInput reads input and forwards override requests.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit || in.Closed {
		c.state.Running = false
	}

	if c.state.View != ViewDashboard {
		return
	}
	switch {
	case in.Boost:
		c.requestOverride(ship.Boost)
	case in.Brake:
		c.requestOverride(ship.Brake)
	}
}

// requestOverride forwards an override and leaves feedback on screen.
func (c *Client) requestOverride(dir ship.Direction) {
	if c.server.RequestOverride(dir) {
		c.setNotice(dir.String() + " engaged")
	} else {
		c.setNotice("override already engaged, " + dir.String() + " ignored")
	}
}

func (c *Client) setNotice(msg string) {
	c.state.Notice = msg
	c.state.noticeTimer = noticeSeconds
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.View = ViewShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen re-centers the panel when the terminal is resized.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	c.panel.Center(termWidth, termHeight)
}

// updateTimers counts down notices and the shutdown screen.
func (c *Client) updateTimers() {
	dt := c.state.delta.Seconds()

	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
		if c.state.noticeTimer <= 0 {
			c.state.noticeTimer = 0
			c.state.Notice = ""
		}
	}

	if c.state.View == ViewShutdown {
		c.state.shutdownTimer -= dt
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}
}
