package core

import "math"

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Viewport maps between a game's logical resolution and the block of screen
// cells the game is displayed in.
type Viewport struct {
	LogicalW, LogicalH float64
	OffsetX, OffsetY   int // Top-left cell of the display area
	DisplayW, DisplayH int // Display area size in cells
}

// FitViewport centers the largest area with the logical aspect ratio inside
// the cell block (x, y, w, h).
func FitViewport(logicalW, logicalH float64, x, y, w, h int) Viewport {
	vp := Viewport{LogicalW: logicalW, LogicalH: logicalH, OffsetX: x, OffsetY: y}
	if logicalW <= 0 || logicalH <= 0 || w <= 0 || h <= 0 {
		vp.DisplayW, vp.DisplayH = max(w, 1), max(h, 1)
		return vp
	}

	k := math.Min(float64(w)/logicalW, float64(h)*cellAspect/logicalH)
	vp.DisplayW = max(1, int(logicalW*k))
	vp.DisplayH = max(1, int(logicalH*k/cellAspect))
	vp.OffsetX = x + (w-vp.DisplayW)/2
	vp.OffsetY = y + (h-vp.DisplayH)/2
	return vp
}

// ScaleX returns the number of logical units per displayed column.
func (v Viewport) ScaleX() float64 {
	return v.LogicalW / float64(max(v.DisplayW, 1))
}

// ScaleY returns the number of logical units per displayed row.
func (v Viewport) ScaleY() float64 {
	return v.LogicalH / float64(max(v.DisplayH, 1))
}

// ToLogical converts a screen cell into the logical coordinate of the cell
// center. The second result is false when the cell is outside the area.
func (v Viewport) ToLogical(cellX, cellY int) (Vec, bool) {
	dx := cellX - v.OffsetX
	dy := cellY - v.OffsetY
	p := Vec{
		X: (float64(dx) + 0.5) * v.ScaleX(),
		Y: (float64(dy) + 0.5) * v.ScaleY(),
	}
	inside := dx >= 0 && dy >= 0 && dx < v.DisplayW && dy < v.DisplayH
	return p, inside
}

// ToCell converts a logical coordinate into a screen cell.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := v.OffsetX + int(math.Floor(x/v.ScaleX()))
	cy := v.OffsetY + int(math.Floor(y/v.ScaleY()))
	return cx, cy
}

// Canvas is the drawing surface handed to games. Games draw in their own
// logical resolution and the canvas projects onto screen cells.
type Canvas struct {
	screen  *Screen
	vp      Viewport
	hudRows int
}

// NewCanvas creates a canvas for a game of the given logical size.
// The top hudRows rows of the screen are reserved for HUD text.
func NewCanvas(s *Screen, logicalW, logicalH float64, hudRows int) *Canvas {
	hudRows = Clamp(hudRows, 0, s.Height())
	vp := FitViewport(logicalW, logicalH, 0, hudRows, s.Width(), s.Height()-hudRows)
	return &Canvas{screen: s, vp: vp, hudRows: hudRows}
}

// Screen returns the underlying screen buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Viewport returns the logical-to-cell mapping of this canvas.
func (c *Canvas) Viewport() Viewport {
	return c.vp
}

// Size returns the logical resolution.
func (c *Canvas) Size() (float64, float64) {
	return c.vp.LogicalW, c.vp.LogicalH
}

// Clear fills the display area.
func (c *Canvas) Clear(bg rune, col Color) {
	c.screen.FillCells(c.vp.OffsetX, c.vp.OffsetY, c.vp.DisplayW, c.vp.DisplayH, bg, col)
}

// cellSpan converts a logical interval into a half-open cell interval that
// always covers at least one cell.
func cellSpan(from, to, scale float64, offset int) (int, int) {
	a := int(math.Floor(from / scale))
	b := int(math.Ceil(to / scale))
	if b <= a {
		b = a + 1
	}
	return offset + a, offset + b
}

// FillRect fills the cells covered by a logical rectangle.
func (c *Canvas) FillRect(r Rect, ch rune, col Color) {
	x0, x1 := cellSpan(r.X, r.Right(), c.vp.ScaleX(), c.vp.OffsetX)
	y0, y1 := cellSpan(r.Y, r.Bottom(), c.vp.ScaleY(), c.vp.OffsetY)
	for y := max(y0, c.vp.OffsetY); y < min(y1, c.vp.OffsetY+c.vp.DisplayH); y++ {
		for x := max(x0, c.vp.OffsetX); x < min(x1, c.vp.OffsetX+c.vp.DisplayW); x++ {
			c.screen.SetColored(x, y, ch, col)
		}
	}
}

// Dot plots a single cell at a logical point.
func (c *Canvas) Dot(x, y float64, ch rune, col Color) {
	cx, cy := c.vp.ToCell(x, y)
	if c.inside(cx, cy) {
		c.screen.SetColored(cx, cy, ch, col)
	}
}

// FillCircle fills every cell whose center lies within the circle.
func (c *Canvas) FillCircle(circle Circle, ch rune, col Color) {
	x0, x1 := cellSpan(circle.X-circle.R, circle.X+circle.R, c.vp.ScaleX(), c.vp.OffsetX)
	y0, y1 := cellSpan(circle.Y-circle.R, circle.Y+circle.R, c.vp.ScaleY(), c.vp.OffsetY)
	drawn := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p, ok := c.vp.ToLogical(x, y)
			if !ok {
				continue
			}
			if math.Hypot(p.X-circle.X, p.Y-circle.Y) <= circle.R {
				c.screen.SetColored(x, y, ch, col)
				drawn = true
			}
		}
	}
	if !drawn {
		c.Dot(circle.X, circle.Y, ch, col)
	}
}

// Line draws a straight line between two logical points.
func (c *Canvas) Line(a, b Vec, ch rune, col Color) {
	ax, ay := c.vp.ToCell(a.X, a.Y)
	bx, by := c.vp.ToCell(b.X, b.Y)
	steps := max(Abs(bx-ax), Abs(by-ay))
	if steps == 0 {
		if c.inside(ax, ay) {
			c.screen.SetColored(ax, ay, ch, col)
		}
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(Lerp(float64(ax), float64(bx), t)))
		y := int(math.Round(Lerp(float64(ay), float64(by), t)))
		if c.inside(x, y) {
			c.screen.SetColored(x, y, ch, col)
		}
	}
}

// Text draws text starting at a logical point, clipped to the display area.
func (c *Canvas) Text(x, y float64, text string, col Color) {
	cx, cy := c.vp.ToCell(x, y)
	i := 0
	for _, r := range text {
		if c.inside(cx+i, cy) {
			c.screen.SetColored(cx+i, cy, r, col)
		}
		i++
	}
}

// TextCentered draws text horizontally centered in the display area.
func (c *Canvas) TextCentered(y float64, text string, col Color) {
	_, cy := c.vp.ToCell(0, y)
	cx := c.vp.OffsetX + (c.vp.DisplayW-len([]rune(text)))/2
	c.screen.DrawText(cx, cy, text, col)
}

// HUD writes text on a reserved HUD row, aligned with the display area.
// Without reserved rows the text goes on the first row of the area.
func (c *Canvas) HUD(row int, text string, col Color) {
	y := row
	if c.hudRows == 0 {
		y = c.vp.OffsetY + row
	}
	c.screen.DrawText(c.vp.OffsetX, y, text, col)
}

// HUDRight writes right-aligned text on a HUD row.
func (c *Canvas) HUDRight(row int, text string, col Color) {
	y := row
	if c.hudRows == 0 {
		y = c.vp.OffsetY + row
	}
	x := c.vp.OffsetX + c.vp.DisplayW - len([]rune(text))
	c.screen.DrawText(x, y, text, col)
}

// Overlay draws a boxed message centered on the display area.
func (c *Canvas) Overlay(lines []string, col Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	x := c.vp.OffsetX + (c.vp.DisplayW-boxW)/2
	y := c.vp.OffsetY + (c.vp.DisplayH-boxH)/2

	c.screen.FillCells(x, y, boxW, boxH, ' ', ColorDefault)
	c.screen.DrawBox(x, y, boxW, boxH, col)
	for i, l := range lines {
		lx := x + (boxW-len([]rune(l)))/2
		c.screen.DrawText(lx, y+1+i, l, col)
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= c.vp.OffsetX && y >= c.vp.OffsetY &&
		x < c.vp.OffsetX+c.vp.DisplayW && y < c.vp.OffsetY+c.vp.DisplayH
}
