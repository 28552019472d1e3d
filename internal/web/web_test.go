package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/sim/clock"
	"github.com/tomz197/shipdash/internal/sim/environment"
	"github.com/tomz197/shipdash/internal/sim/ship"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	srv     *server.Server
	clk     *clock.Manual
	handler *Handler
	http    *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewManual(epoch)
	srv := server.NewServer(server.Options{
		Seed:               3,
		Clock:              clk,
		InitialShip:        &ship.State{Speed: 9, Fuel: 0.97, Oxygen: 0.92},
		InitialEnvironment: &environment.State{Gravity: 1.01, Distance: 4000, Power: 320},
	})
	h := NewHandler(srv, Options{RefreshInterval: 10 * time.Millisecond})
	ts := httptest.NewServer(h.Routes())
	t.Cleanup(func() {
		h.Close()
		ts.Close()
	})
	return &fixture{srv: srv, clk: clk, handler: h, http: ts}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", u, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) Outgoing {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg Outgoing
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %s message: %v", typ, err)
		}
		if msg.Type == typ {
			return msg
		}
	}
}

func TestIndexAndHealth(t *testing.T) {
	f := newFixture(t)

	res, err := http.Get(f.http.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}

	health, err := http.Get(f.http.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("GET /healthz status = %d", health.StatusCode)
	}
}

func TestVitals(t *testing.T) {
	f := newFixture(t)

	res, err := http.Get(f.http.URL + "/api/vitals")
	if err != nil {
		t.Fatalf("GET /api/vitals: %v", err)
	}
	defer res.Body.Close()

	var snap server.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Ship.Speed != 9 || snap.Environment.Power != 320 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Message != "Systems operating nominally" {
		t.Fatalf("message = %q", snap.Message)
	}
	if len(snap.Readouts) != 7 {
		t.Fatalf("readouts = %d, want 7", len(snap.Readouts))
	}
}

func postOverride(t *testing.T, base, dir string) (int, OverrideResponse) {
	t.Helper()
	res, err := http.Post(base+"/api/override/"+dir, "", nil)
	if err != nil {
		t.Fatalf("POST override %s: %v", dir, err)
	}
	defer res.Body.Close()
	var body OverrideResponse
	if res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res.StatusCode, body
}

func TestOverrideEndpoint(t *testing.T) {
	f := newFixture(t)

	code, body := postOverride(t, f.http.URL, "boost")
	if code != http.StatusOK || !body.Accepted || body.Direction != ship.Boost {
		t.Fatalf("boost: status %d body %+v", code, body)
	}
	if !body.Snapshot.Ship.ManualOverrideActive {
		t.Fatalf("snapshot does not show the override")
	}

	code, body = postOverride(t, f.http.URL, "brake")
	if code != http.StatusOK || body.Accepted {
		t.Fatalf("brake during boost: status %d accepted %v", code, body.Accepted)
	}

	f.clk.Advance(1500 * time.Millisecond)
	code, body = postOverride(t, f.http.URL, "BRAKE")
	if code != http.StatusOK || !body.Accepted || body.Direction != ship.Brake {
		t.Fatalf("brake after expiry: status %d body %+v", code, body)
	}

	code, _ = postOverride(t, f.http.URL, "warp")
	if code != http.StatusBadRequest {
		t.Fatalf("unknown direction status = %d, want 400", code)
	}
}

func TestGravityEndpoint(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		input, planet string
		status        int
		want          string
	}{
		{"100", "mars", http.StatusOK, "38.00"},
		{"38", "earth", http.StatusOK, "100.00"},
		{"heavy", "mars", http.StatusUnprocessableEntity, "must be a number"},
	}
	for _, tt := range tests {
		res, err := http.PostForm(f.http.URL+"/api/gravity", url.Values{"input": {tt.input}, "type": {tt.planet}})
		if err != nil {
			t.Fatalf("POST gravity: %v", err)
		}
		var body struct {
			Result string `json:"result"`
			Error  string `json:"error"`
		}
		err = json.NewDecoder(res.Body).Decode(&body)
		res.Body.Close()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.StatusCode != tt.status {
			t.Fatalf("%s to %s: status %d, want %d", tt.input, tt.planet, res.StatusCode, tt.status)
		}
		got := body.Result
		if tt.status != http.StatusOK {
			got = body.Error
		}
		if !strings.Contains(got, tt.want) {
			t.Fatalf("%s to %s: got %q, want %q", tt.input, tt.planet, got, tt.want)
		}
	}
}

func TestStreamPushesSnapshots(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	first := readUntil(t, conn, TypeSnapshot)
	if first.Snapshot == nil || first.Snapshot.Ship.Speed != 9 {
		t.Fatalf("first message = %+v", first)
	}
	if f.handler.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", f.handler.Subscribers())
	}

	f.srv.TickDistance()
	deadline := time.Now().Add(2 * time.Second)
	for {
		msg := readUntil(t, conn, TypeSnapshot)
		if msg.Snapshot.Ticks.Distance == 1 {
			if msg.Snapshot.Environment.Distance != 4009 {
				t.Fatalf("distance = %f, want 4009", msg.Snapshot.Environment.Distance)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("tick never reached the stream")
		}
	}
}

func TestStreamOverrideCommand(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readUntil(t, conn, TypeSnapshot)

	if err := conn.WriteJSON(Incoming{Type: TypeOverride, Direction: "brake"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply := readUntil(t, conn, TypeOverride)
	if !reply.Accepted || reply.Direction != ship.Brake {
		t.Fatalf("reply = %+v", reply)
	}

	if err := conn.WriteJSON(Incoming{Type: TypeOverride, Direction: "boost"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if reply := readUntil(t, conn, TypeOverride); reply.Accepted {
		t.Fatalf("second override accepted while the first runs")
	}

	if err := conn.WriteJSON(Incoming{Type: TypeOverride, Direction: "sideways"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if reply := readUntil(t, conn, TypeError); !strings.Contains(reply.Error, "sideways") {
		t.Fatalf("error reply = %q", reply.Error)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if reply := readUntil(t, conn, TypeError); reply.Error != "malformed command" {
		t.Fatalf("malformed reply = %q", reply.Error)
	}
}

func TestStreamClosesOnServerShutdown(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readUntil(t, conn, TypeSnapshot)

	done := make(chan struct{})
	go func() {
		f.srv.Shutdown(2 * time.Second)
		close(done)
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
				t.Fatalf("read error = %v, want going-away close", err)
			}
			break
		}
	}

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("shutdown did not return")
	}
	if n := f.handler.Subscribers(); n != 0 {
		t.Fatalf("subscribers after shutdown = %d, want 0", n)
	}
}

func TestReadCommandsStopsWhenStreamEnds(t *testing.T) {
	out := make(chan Incoming) // never drained
	done := make(chan struct{})
	finished := make(chan struct{})

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		readCommands(conn, out, done)
		close(finished)
	}))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(Incoming{Type: TypeOverride, Direction: "boost"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("reader stayed blocked after the stream ended")
	}
	if _, ok := <-out; ok {
		t.Fatalf("commands channel not closed")
	}
}
