package server

import (
	"context"
	"io"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shipdash/internal/readout"
	"github.com/tomz197/shipdash/internal/sim/clock"
	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/environment"
	"github.com/tomz197/shipdash/internal/sim/random"
	"github.com/tomz197/shipdash/internal/sim/ship"
	"github.com/tomz197/shipdash/internal/sim/status"
)

// Dashboard is the interface presentation layers use to talk to the server.
// Decouples terminal and web clients from the concrete Server.
type Dashboard interface {
	RegisterClient(name string) *ClientHandle
	UnregisterClient(clientID int)
	GetSnapshot() *Snapshot
	RequestOverride(dir ship.Direction) bool
}

// Server owns the simulation and is its only writer. Ticks, override
// requests and override expiry are serialized by mu; readers get immutable
// snapshots.
type Server struct {
	mu       sync.Mutex
	ship     *ship.Ship
	env      *environment.Environment
	status   *status.Registry
	clock    clock.Clock
	tuning   config.Tuning
	logger   *log.Logger
	seed     uint64
	ticks    Ticks
	fuelGone bool

	snapshot atomic.Pointer[Snapshot]

	clientsMu    sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
}

// Compile-time check that Server implements Dashboard.
var _ Dashboard = (*Server)(nil)

// ClientHandle represents a connected presentation client.
type ClientHandle struct {
	ID       int
	Name     string
	EventsCh chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Options configures a Server. Zero values pick production defaults.
type Options struct {
	Seed   uint64        // Seed for the random source; 0 picks one
	Random random.Source // Overrides the seeded source when set
	Tuning *config.Tuning
	Clock  clock.Clock
	Logger *log.Logger

	// Start from fixed readings instead of random ones.
	InitialShip        *ship.State
	InitialEnvironment *environment.State
}

// NewServer creates a server with a freshly initialized ship and environment.
func NewServer(opts Options) *Server {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := opts.Random
	seed := opts.Seed
	if rng == nil {
		src := random.NewSource(opts.Seed)
		rng = src
		seed = src.Seed()
	}

	s := &Server{
		status:       status.NewRegistryWithMessages(messageTable(tuning.Messages)),
		clock:        clk,
		tuning:       tuning,
		logger:       logger,
		seed:         seed,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
	}

	deps := ship.Deps{
		Random:    rng,
		Scheduler: serializedScheduler{s},
		Status:    s.status,
		Tuning:    tuning,
	}
	if opts.InitialShip != nil {
		s.ship = ship.FromState(deps, *opts.InitialShip)
	} else {
		s.ship = ship.New(deps)
	}
	if opts.InitialEnvironment != nil {
		s.env = environment.FromState(s.ship, rng, *opts.InitialEnvironment)
	} else {
		s.env = environment.New(s.ship, rng)
	}

	s.mu.Lock()
	s.publishLocked()
	s.mu.Unlock()

	return s
}

// messageTable applies tuning overrides on top of the built-in texts.
func messageTable(overrides map[string]string) map[status.Code]string {
	table := maps.Clone(status.DefaultMessages)
	for code, msg := range overrides {
		table[status.Code(code)] = msg
	}
	return table
}

// serializedScheduler runs delayed ship tasks under the server lock and
// publishes the result.
type serializedScheduler struct {
	s *Server
}

func (sc serializedScheduler) AfterFunc(d time.Duration, f func()) {
	s := sc.s
	s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		f()
		s.logger.Info("manual override expired", "speed", s.ship.Speed(), "fuel", s.ship.Fuel())
		s.publishLocked()
	})
}

// Run drives the four updates on their own cadences. Blocks until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) {
	speed := time.NewTicker(s.tuning.SpeedInterval)
	distance := time.NewTicker(s.tuning.DistanceInterval)
	gravity := time.NewTicker(s.tuning.GravityInterval)
	power := time.NewTicker(s.tuning.PowerInterval)
	defer speed.Stop()
	defer distance.Stop()
	defer gravity.Stop()
	defer power.Stop()

	s.logger.Info("simulation started", "seed", s.seed,
		"speedInterval", s.tuning.SpeedInterval, "distanceInterval", s.tuning.DistanceInterval)

	for {
		select {
		case <-ctx.Done():
			ticks := s.GetSnapshot().Ticks
			s.logger.Info("simulation stopped", "speedTicks", ticks.Speed, "distanceTicks", ticks.Distance)
			return
		case <-speed.C:
			s.TickSpeed()
		case <-distance.C:
			s.TickDistance()
		case <-gravity.C:
			s.TickGravity()
		case <-power.C:
			s.TickPower()
		}
	}
}

// TickSpeed advances the speed controller one tick and returns the new speed.
func (s *Server) TickSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ship.Phase()
	speed := s.ship.UpdateSpeed()
	s.ticks.Speed++

	if after := s.ship.Phase(); after != before {
		s.logger.Info("speed controller phase change",
			"from", before, "to", after, "speed", speed, "fuel", s.ship.Fuel())
	}
	if !s.fuelGone && s.ship.Fuel() <= 0 {
		s.fuelGone = true
		s.logger.Warn("fuel exhausted", "fuel", s.ship.Fuel(), "tick", s.ticks.Speed)
	}

	s.publishLocked()
	return speed
}

// TickDistance adds one second of travel.
func (s *Server) TickDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.env.UpdateDistance()
	s.ticks.Distance++
	s.publishLocked()
	return d
}

// TickGravity resamples gravity.
func (s *Server) TickGravity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.env.UpdateGravity()
	s.ticks.Gravity++
	s.publishLocked()
	return g
}

// TickPower resamples power.
func (s *Server) TickPower() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.env.UpdatePower()
	s.ticks.Power++
	s.publishLocked()
	return p
}

// RequestOverride starts a manual override. Returns false when one is
// already running.
func (s *Server) RequestOverride(dir ship.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ship.BoostManually(dir) {
		s.logger.Debug("manual override ignored", "direction", dir)
		return false
	}
	s.logger.Info("manual override engaged", "direction", dir, "duration", s.tuning.OverrideDuration)
	s.publishLocked()
	return true
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Tuning returns the tuning the server runs with.
func (s *Server) Tuning() config.Tuning {
	return s.tuning
}

// Seed returns the random seed, for replaying a run.
func (s *Server) Seed() uint64 {
	return s.seed
}

// publishLocked stores a new snapshot. Must be called with mu held.
func (s *Server) publishLocked() {
	shipState := s.ship.Snapshot()
	envState := s.env.Snapshot()

	s.clientsMu.RLock()
	clients := len(s.clients)
	s.clientsMu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Ship:        shipState,
		Environment: envState,
		Phase:       s.ship.Phase().String(),
		Message:     s.status.Message(),
		Codes:       s.status.Active(),
		Readouts:    readout.Lines(shipState, envState),
		Override:    readout.Override(shipState),
		Ticks:       s.ticks,
		Seed:        s.seed,
		Clients:     clients,
		TakenAt:     s.clock.Now(),
	})
}

// RegisterClient registers a new client and returns its handle.
func (s *Server) RegisterClient(name string) *ClientHandle {
	s.clientsMu.Lock()
	id := s.nextClientID
	s.nextClientID++
	handle := &ClientHandle{
		ID:       id,
		Name:     name,
		EventsCh: make(chan ClientEvent, 4),
	}
	s.clients[id] = handle
	s.clientsMu.Unlock()

	s.logger.Debug("client registered", "id", id, "name", name)
	s.refresh()
	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.clientsMu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	s.clientsMu.Unlock()

	if ok {
		s.logger.Debug("client unregistered", "id", clientID, "name", handle.Name)
		s.refresh()
	}
}

// refresh republishes the snapshot outside a tick.
func (s *Server) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked()
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout). The caller should cancel the Run context after
// Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.clientsMu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.clientsMu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		s.clientsMu.RLock()
		remaining := len(s.clients)
		s.clientsMu.RUnlock()
		if remaining == 0 {
			return
		}

		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", remaining)
			return
		case <-ticker.C:
		}
	}
}
