package core

import "testing"

func TestFitViewport(t *testing.T) {
	vp := FitViewport(100, 50, 0, 0, 40, 20)

	if vp.DisplayW != 40 || vp.DisplayH != 10 {
		t.Fatalf("display = %dx%d, expected 40x10", vp.DisplayW, vp.DisplayH)
	}
	if vp.OffsetX != 0 || vp.OffsetY != 5 {
		t.Errorf("offset = (%d, %d), expected (0, 5)", vp.OffsetX, vp.OffsetY)
	}
}

func TestViewportToLogical(t *testing.T) {
	vp := FitViewport(100, 50, 0, 0, 40, 20)

	tests := []struct {
		name       string
		cx, cy     int
		wantX      float64
		wantY      float64
		wantInside bool
	}{
		{"first cell", 0, 5, 1.25, 2.5, true},
		{"last cell", 39, 14, 98.75, 47.5, true},
		{"above area", 10, 4, 26.25, -2.5, false},
		{"right of area", 40, 5, 101.25, 2.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, inside := vp.ToLogical(tc.cx, tc.cy)
			if p.X != tc.wantX || p.Y != tc.wantY {
				t.Errorf("ToLogical(%d, %d) = %+v, expected (%v, %v)", tc.cx, tc.cy, p, tc.wantX, tc.wantY)
			}
			if inside != tc.wantInside {
				t.Errorf("ToLogical(%d, %d) inside = %v, expected %v", tc.cx, tc.cy, inside, tc.wantInside)
			}
		})
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := FitViewport(100, 50, 0, 0, 40, 20)
	for cx := 0; cx < 40; cx += 7 {
		for cy := 5; cy < 15; cy += 3 {
			p, _ := vp.ToLogical(cx, cy)
			gx, gy := vp.ToCell(p.X, p.Y)
			if gx != cx || gy != cy {
				t.Errorf("round trip (%d, %d) -> %+v -> (%d, %d)", cx, cy, p, gx, gy)
			}
		}
	}
}

func TestCanvasFillRectCoversAtLeastOneCell(t *testing.T) {
	s := NewScreen(40, 20)
	c := NewCanvas(s, 100, 50, 0)

	// Far smaller than one cell
	c.FillRect(NewRect(10, 10, 0.1, 0.1), '#', ColorRed)

	count := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == '#' {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("tiny rect painted %d cells, expected 1", count)
	}
}

func TestCanvasClipsToArea(t *testing.T) {
	s := NewScreen(40, 20)
	c := NewCanvas(s, 100, 50, 0)

	c.FillRect(NewRect(-50, -50, 500, 500), '#', ColorRed)

	vp := c.Viewport()
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			inside := y >= vp.OffsetY && y < vp.OffsetY+vp.DisplayH
			if painted := s.Get(x, y) == '#'; painted != inside {
				t.Fatalf("cell (%d, %d) painted=%v, inside=%v", x, y, painted, inside)
			}
		}
	}
}

func TestCanvasHUDRows(t *testing.T) {
	s := NewScreen(40, 21)
	c := NewCanvas(s, 100, 50, 1)

	if c.Viewport().OffsetY < 1 {
		t.Errorf("display area overlaps the HUD row: offset %d", c.Viewport().OffsetY)
	}
	c.HUD(0, "SCORE 10", ColorWhite)
	if s.Row(0)[c.Viewport().OffsetX:c.Viewport().OffsetX+8] != "SCORE 10" {
		t.Errorf("HUD row = %q", s.Row(0))
	}
}
