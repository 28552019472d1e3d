package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/sim/ship"
)

const (
	writeWait     = time.Second
	typeMalformed = "malformed"
)

// Message types on the websocket.
const (
	TypeSnapshot = "snapshot"
	TypeOverride = "override"
	TypeError    = "error"
)

// Outgoing is a message pushed to the browser.
type Outgoing struct {
	Type      string           `json:"type"`
	Snapshot  *server.Snapshot `json:"snapshot,omitempty"`
	Direction ship.Direction   `json:"direction,omitempty"`
	Accepted  bool             `json:"accepted,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Incoming is a command sent by the browser.
type Incoming struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
}

type subscriber struct {
	conn   *websocket.Conn
	handle *server.ClientHandle
}

func (h *Handler) addSubscriber(sub *subscriber) {
	h.mu.Lock()
	h.subscribers.Put(sub)
	h.mu.Unlock()
}

func (h *Handler) removeSubscriber(sub *subscriber) {
	h.mu.Lock()
	h.subscribers.Remove(sub)
	h.mu.Unlock()
}

// stream upgrades to a websocket and pushes a snapshot every refresh
// interval. Override commands from the browser are answered in-line.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	sub := &subscriber{
		conn:   conn,
		handle: h.dash.RegisterClient("web " + r.RemoteAddr),
	}
	h.addSubscriber(sub)
	h.logger.Info("dashboard viewer connected", "remote", r.RemoteAddr, "client", sub.handle.ID)
	defer func() {
		h.removeSubscriber(sub)
		h.dash.UnregisterClient(sub.handle.ID)
		conn.Close()
		h.logger.Info("dashboard viewer disconnected", "remote", r.RemoteAddr, "client", sub.handle.ID)
	}()

	commands := make(chan Incoming, 8)
	done := make(chan struct{})
	defer close(done)
	go readCommands(conn, commands, done)

	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()

	if err := h.send(conn, Outgoing{Type: TypeSnapshot, Snapshot: h.dash.GetSnapshot()}); err != nil {
		return
	}

	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			if err := h.send(conn, h.handleCommand(cmd)); err != nil {
				return
			}
		case event, ok := <-sub.handle.EventsCh:
			if !ok || event.Type == server.EventServerShutdown {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}
		case <-ticker.C:
			if err := h.send(conn, Outgoing{Type: TypeSnapshot, Snapshot: h.dash.GetSnapshot()}); err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleCommand(cmd Incoming) Outgoing {
	if cmd.Type == typeMalformed {
		return Outgoing{Type: TypeError, Error: "malformed command"}
	}
	if cmd.Type != TypeOverride {
		return Outgoing{Type: TypeError, Error: "unknown command " + cmd.Type}
	}
	dir, err := ship.ParseDirection(cmd.Direction)
	if err != nil {
		return Outgoing{Type: TypeError, Error: err.Error()}
	}
	return Outgoing{
		Type:      TypeOverride,
		Direction: dir,
		Accepted:  h.dash.RequestOverride(dir),
		Snapshot:  h.dash.GetSnapshot(),
	}
}

func (h *Handler) send(conn *websocket.Conn, msg Outgoing) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// readCommands forwards decoded commands until the connection fails or done
// closes, then closes out.
func readCommands(conn *websocket.Conn, out chan<- Incoming, done <-chan struct{}) {
	defer close(out)
	for {
		var cmd Incoming
		if err := conn.ReadJSON(&cmd); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
				return
			}
			cmd = Incoming{Type: typeMalformed}
		}
		select {
		case out <- cmd:
		case <-done:
			return
		}
	}
}
