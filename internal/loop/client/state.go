package client

import (
	"time"

	"github.com/tomz197/shipdash/internal/input"
)

// View is what the client is currently showing.
type View int

const (
	ViewDashboard View = iota // Live vitals panel
	ViewShutdown              // Server is shutting down
)

// ClientState holds per-connection state (input, notices, timers).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	View          View
	prevView      View
	Notice        string  // Feedback for the last override request
	noticeTimer   float64 // Seconds until Notice is cleared
	Running       bool
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		View:    ViewDashboard,
		Running: true,
	}
}
