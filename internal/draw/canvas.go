package draw

import (
	"math"
	"strings"
)

// Half-block glyphs: each terminal cell holds two vertical pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Point is a pixel coordinate on a Canvas. Y grows downward.
type Point struct {
	X, Y int
}

// Canvas is a monochrome pixel buffer with 2x vertical resolution using
// half-block characters.
type Canvas struct {
	width  int    // Columns
	rows   int    // Terminal rows
	height int    // rows * 2
	pixels []bool // Flat slice: [y * width + x]
}

// NewCanvas creates a canvas covering width columns and rows terminal rows.
func NewCanvas(width, rows int) *Canvas {
	if width < 0 {
		width = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Canvas{
		width:  width,
		rows:   rows,
		height: rows * 2,
		pixels: make([]bool, width*rows*2),
	}
}

// Width returns the width in pixels (columns).
func (c *Canvas) Width() int { return c.width }

// Height returns the height in pixels (twice the rows).
func (c *Canvas) Height() int { return c.height }

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Set sets a pixel. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.pixels[y*c.width+x] = true
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := p1.X, p1.Y
	dx := abs(p2.X - x1)
	dy := abs(p2.Y - y1)

	sx := 1
	if x1 > p2.X {
		sx = -1
	}
	sy := 1
	if y1 > p2.Y {
		sy = -1
	}

	err := dx - dy
	for {
		c.Set(x1, y1)
		if x1 == p2.X && y1 == p2.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Plot draws values left to right, one column each, scaled so lo sits on
// the bottom pixel row and hi on the top. Consecutive samples are joined.
// Only the newest Width() values are drawn.
func (c *Canvas) Plot(values []float64, lo, hi float64) {
	if c.width == 0 || c.height == 0 || hi <= lo {
		return
	}
	if len(values) > c.width {
		values = values[len(values)-c.width:]
	}
	scale := float64(c.height-1) / (hi - lo)
	var prev Point
	for i, v := range values {
		v = math.Max(lo, math.Min(hi, v))
		p := Point{X: i, Y: c.height - 1 - int(math.Round((v-lo)*scale))}
		if i == 0 {
			c.Set(p.X, p.Y)
		} else {
			c.DrawLine(prev, p)
		}
		prev = p
	}
}

// Lines renders the canvas as one string per terminal row. Empty cells are
// spaces so each line overwrites the previous frame.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.rows)
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		b.Reset()
		top := row * 2 * c.width
		bottom := top + c.width
		for col := 0; col < c.width; col++ {
			upper, lower := c.pixels[top+col], c.pixels[bottom+col]
			switch {
			case upper && lower:
				b.WriteRune(BlockFull)
			case upper:
				b.WriteRune(BlockUpperHalf)
			case lower:
				b.WriteRune(BlockLowerHalf)
			default:
				b.WriteByte(' ')
			}
		}
		lines[row] = b.String()
	}
	return lines
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
