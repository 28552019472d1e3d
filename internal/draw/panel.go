package draw

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize keeps each write inside one TCP packet (MTU 1500 minus headers).
const maxChunkSize = 1400

const (
	escClear      = "\033[H\033[2J"
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?25h"
)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Panel is a framed area of fixed inner size, centered in the terminal.
// Drawing calls queue escape sequences for one frame; Flush sends them in
// packet-sized chunks.
type Panel struct {
	out    io.Writer
	frame  []byte
	width  int // Inner columns
	height int // Inner rows

	offCol, offRow int // Top-left corner of the frame, 0-based
	termW, termH   int // Last size passed to Center
}

// NewPanel creates a panel with the given inner size writing to w.
func NewPanel(w io.Writer, width, height int) *Panel {
	return &Panel{
		out:    w,
		width:  width,
		height: height,
	}
}

// Width returns the inner width in cells.
func (p *Panel) Width() int { return p.width }

// Height returns the inner height in rows.
func (p *Panel) Height() int { return p.height }

// Offset returns the 0-based terminal position of the frame's top-left corner.
func (p *Panel) Offset() (col, row int) { return p.offCol, p.offRow }

// Center places the panel in the middle of a termWidth x termHeight
// terminal, pinned to the top-left when it does not fit. On a size change it
// queues a full clear so the old position leaves no residue, and reports true.
func (p *Panel) Center(termWidth, termHeight int) bool {
	if termWidth == p.termW && termHeight == p.termH {
		return false
	}
	p.termW, p.termH = termWidth, termHeight
	p.offCol = max(0, (termWidth-p.width-2)/2)
	p.offRow = max(0, (termHeight-p.height-2)/2)
	p.Clear()
	return true
}

// Clear queues a full terminal clear.
func (p *Panel) Clear() { p.frame = append(p.frame, escClear...) }

// HideCursor queues hiding the cursor.
func (p *Panel) HideCursor() { p.frame = append(p.frame, escHideCursor...) }

// ShowCursor queues showing the cursor.
func (p *Panel) ShowCursor() { p.frame = append(p.frame, escShowCursor...) }

// moveTo queues a cursor move to frame cell (col, row), both 0-based with
// (0, 0) on the top-left corner of the border.
func (p *Panel) moveTo(col, row int) {
	p.frame = append(p.frame, "\033["...)
	p.frame = strconv.AppendInt(p.frame, int64(p.offRow+row+1), 10)
	p.frame = append(p.frame, ';')
	p.frame = strconv.AppendInt(p.frame, int64(p.offCol+col+1), 10)
	p.frame = append(p.frame, 'H')
}

// Text queues s at inner cell (col, row), both 1-based. s is written as is;
// callers pad or clip it.
func (p *Panel) Text(col, row int, s string) {
	p.moveTo(col, row)
	p.frame = append(p.frame, s...)
}

// Line fills inner row n with text, padded to the inner width so it
// overwrites the previous frame.
func (p *Panel) Line(n int, text string) {
	p.Text(1, n, Pad(text, p.width))
}

// ColorLine is Line wrapped in an SGR color.
func (p *Panel) ColorLine(n int, color, text string) {
	p.Text(1, n, Colorize(color, Pad(text, p.width)))
}

// Centered fills inner row n with text centered horizontally.
func (p *Panel) Centered(n int, text string) {
	pad := max(0, (p.width-utf8.RuneCountInString(text))/2)
	p.Line(n, strings.Repeat(" ", pad)+text)
}

// Blank clears inner rows from..to inclusive.
func (p *Panel) Blank(from, to int) {
	for n := from; n <= to; n++ {
		p.Line(n, "")
	}
}

// Gauge fills inner row n with a labelled bar of barWidth cells followed by
// value, e.g. " Fuel    [████▒   ]  97.0%".
func (p *Panel) Gauge(n int, label string, fraction float64, barWidth int, value string) {
	p.Line(n, fmt.Sprintf(" %-7s [%s] %7s", label, Gauge(fraction, barWidth), value))
}

// Frame queues the border around the inner area. A non-empty title is set
// into the top edge when it fits.
func (p *Panel) Frame(title string) {
	top := strings.Repeat("─", p.width)
	if n := utf8.RuneCountInString(title); title != "" && n+4 <= p.width {
		top = "─ " + title + " " + strings.Repeat("─", p.width-n-3)
	}
	p.moveTo(0, 0)
	p.frame = append(p.frame, "┌"+top+"┐"...)
	for r := 1; r <= p.height; r++ {
		p.moveTo(0, r)
		p.frame = append(p.frame, "│"...)
		p.moveTo(p.width+1, r)
		p.frame = append(p.frame, "│"...)
	}
	p.moveTo(0, p.height+1)
	p.frame = append(p.frame, "└"+strings.Repeat("─", p.width)+"┘"...)
}

// Flush writes the queued frame, one Write per chunk, and resets it.
func (p *Panel) Flush() error {
	data := p.frame
	p.frame = p.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := p.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
