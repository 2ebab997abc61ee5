package graphic

// Canvas is a braille pixel buffer over terminal cells. Each cell holds a
// 2x4 dot grid, so a w by h cell region gives 2w by 4h addressable pixels.
type Canvas struct {
	width  int
	height int
	dots   []bool
}

// brailleBits maps a (column, row) dot inside one cell to its bit in the
// braille pattern block.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// NewCanvas makes a canvas covering w by h cells.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		width:  w,
		height: h,
		dots:   make([]bool, w*2*h*4),
	}
}

// PixelWidth returns the addressable width in dots.
func (c *Canvas) PixelWidth() int { return c.width * 2 }

// PixelHeight returns the addressable height in dots.
func (c *Canvas) PixelHeight() int { return c.height * 4 }

// Clear unsets every dot.
func (c *Canvas) Clear() {
	for idx := range c.dots {
		c.dots[idx] = false
	}
}

// Set turns on the dot at pixel x, y. Out-of-range dots are dropped, which
// is what clips curve points that overshoot the display region.
func (c *Canvas) Set(x, y int) {
	if x < 0 || x >= c.PixelWidth() || y < 0 || y >= c.PixelHeight() {
		return
	}

	c.dots[y*c.PixelWidth()+x] = true
}

// Line draws a straight segment between two pixels, Bresenham style.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Set(x0, y0)

		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rune returns the braille rune for the cell at cx, cy, or 0 when the cell
// is empty.
func (c *Canvas) Rune(cx, cy int) rune {
	var braille rune

	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 4; dy++ {
			if c.dots[(cy*4+dy)*c.PixelWidth()+(cx*2+dx)] {
				braille |= brailleBits[dx][dy]
			}
		}
	}

	if braille == 0 {
		return 0
	}

	return 0x2800 + braille
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
