package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(0, width),
		height: max(0, height),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	s.Fill(' ', ColorDefault)
}

// Fill fills the entire screen with the given rune and color.
func (s *Screen) Fill(r rune, c Color) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r, Color: c}
		}
	}
}

// Set places a rune with the default color at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune at the given position.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColored(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, c)
}

// FillCells fills a block of cells given in screen coordinates.
func (s *Screen) FillCells(x, y, w, h int, r rune, c Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.SetColored(xx, yy, r, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(x, y, w, h int, c Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	s.SetColored(x, y, '┌', c)
	s.SetColored(right, y, '┐', c)
	s.SetColored(x, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)

	for xx := x + 1; xx < right; xx++ {
		s.SetColored(xx, y, '─', c)
		s.SetColored(xx, bottom, '─', c)
	}
	for yy := y + 1; yy < bottom; yy++ {
		s.SetColored(x, yy, '│', c)
		s.SetColored(right, yy, '│', c)
	}
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
