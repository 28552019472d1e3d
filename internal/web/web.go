// Package web serves the browser dashboard: a static page, a JSON API and a
// websocket that pushes snapshots.
package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/zyedidia/generic/mapset"

	"github.com/tomz197/shipdash/internal/gravity"
	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/sim/config"
	"github.com/tomz197/shipdash/internal/sim/ship"
)

//go:embed static/index.html
var indexHTML []byte

// Options configures the handler.
type Options struct {
	Logger          *log.Logger
	RefreshInterval time.Duration // Websocket push cadence; defaults to config.RefreshInterval
}

// Handler serves the dashboard for one Dashboard.
type Handler struct {
	dash     server.Dashboard
	logger   *log.Logger
	refresh  time.Duration
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers mapset.Set[*subscriber]
}

// NewHandler creates a handler serving dash.
func NewHandler(dash server.Dashboard, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = config.RefreshInterval
	}
	return &Handler{
		dash:    dash,
		logger:  logger,
		refresh: refresh,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		subscribers: mapset.New[*subscriber](),
	}
}

// Routes returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/", h.index)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	r.Get("/ws", h.stream)

	r.Route("/api", func(r chi.Router) {
		r.Get("/vitals", h.vitals)
		r.Post("/override/{direction}", h.override)
		r.Post("/gravity", h.convertGravity)
	})
	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (h *Handler) vitals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.GetSnapshot())
}

// OverrideResponse reports the outcome of an override request. A request made
// while another override runs is not an error; it is simply not accepted.
type OverrideResponse struct {
	Direction ship.Direction   `json:"direction"`
	Accepted  bool             `json:"accepted"`
	Snapshot  *server.Snapshot `json:"snapshot"`
}

func (h *Handler) override(w http.ResponseWriter, r *http.Request) {
	dir, err := ship.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	accepted := h.dash.RequestOverride(dir)
	writeJSON(w, http.StatusOK, OverrideResponse{
		Direction: dir,
		Accepted:  accepted,
		Snapshot:  h.dash.GetSnapshot(),
	})
}

// GravityResponse carries a converted weight.
type GravityResponse struct {
	Result string `json:"result"`
}

func (h *Handler) convertGravity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := gravity.Convert(r.FormValue("input"), gravity.Planet(r.FormValue("type")))
	if err != nil {
		if errors.Is(err, gravity.ErrInvalidNumericInput) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, GravityResponse{Result: result})
}

// Subscribers returns the number of open websocket streams.
func (h *Handler) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.subscribers.Size()
}

// Close drops every open websocket stream. http.Server.Shutdown does not
// touch hijacked connections, so call this after it.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	deadline := time.Now().Add(time.Second)
	h.subscribers.Each(func(sub *subscriber) {
		sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		sub.conn.Close()
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "duration", time.Since(start))
		})
	}
}
