package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		quit  bool
		boost bool
		brake bool
	}{
		{"empty", "", false, false, false},
		{"boost key", "b", false, true, false},
		{"brake key", "n", false, false, true},
		{"up arrow", "\x1b[A", false, true, false},
		{"down arrow", "\x1b[B", false, false, true},
		{"side arrows ignored", "\x1b[C\x1b[D", false, false, false},
		{"quit", "q", true, false, false},
		{"ctrl-c", "\x03", true, false, false},
		{"combined", "bq", true, true, false},
		{"unknown", "xyz", false, false, false},
	}
	for _, c := range cases {
		got := Parse([]byte(c.in))
		if got.Quit != c.quit || got.Boost != c.boost || got.Brake != c.brake {
			t.Fatalf("%s: Parse(%q) = %+v", c.name, c.in, got)
		}
	}
}

func TestStreamDrainsAndReportsClose(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("b")))

	var saw Input
	deadline := time.After(time.Second)
	for !saw.Closed {
		in := ReadInput(s)
		if in.Boost {
			saw.Boost = true
		}
		saw.Closed = in.Closed
		select {
		case <-deadline:
			t.Fatalf("stream never closed")
		default:
		}
		time.Sleep(time.Millisecond)
	}
	if !saw.Boost {
		t.Fatalf("boost key lost")
	}
	if in := ReadInput(s); !in.Closed || len(in.Pressed) != 0 {
		t.Fatalf("closed stream returned %+v", in)
	}
}
