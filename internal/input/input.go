// Package input turns raw terminal bytes into dashboard commands.
package input

import (
	"bufio"
)

// Input represents the keys seen since the previous read.
type Input struct {
	Quit    bool
	Boost   bool
	Brake   bool
	Closed  bool // The underlying reader hit EOF or an error
	Pressed []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Parse(buf)
	in.Closed = s.closed
	return in
}

// Parse maps raw bytes to commands. Arrow keys arrive as CSI sequences.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				in.Boost = true
				i += 2
				continue
			case 'B': // Down arrow
				in.Brake = true
				i += 2
				continue
			case 'C', 'D': // Left/right arrows do nothing
				i += 2
				continue
			}
		}

		applyByte(&in, b)
	}
	return in
}

// applyByte updates the input for a single pressed byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl-C arrives as a byte in raw mode
		in.Quit = true
	case 'b', 'B', 'w', 'W', 'k', 'K', '+':
		in.Boost = true
	case 'n', 'N', 's', 'S', 'j', 'J', '-':
		in.Brake = true
	}
}
