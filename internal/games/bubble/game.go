// Package bubble implements Bubble Shooter: aim a cannon, fire coloured
// bubbles into a hex grid and pop clusters of three or more.
package bubble

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/games/fx"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 408.0
	Height = 480.0
)

const (
	BubbleChar = '●'
	AimChar    = '·'
	LineChar   = '╌'
)

const (
	empty        = -1
	particleLife = 30
	cannonDrop   = 30 // cannon sits this far above the bottom edge
	aimLength    = 140
)

// palette maps colour indices on the grid to screen colours.
var palette = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
}

// Cell addresses one slot of the grid.
type Cell struct {
	Row, Col int
}

// Game implements Bubble Shooter game logic.
type Game struct {
	cfg        config.BubbleConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	rng    *rand.Rand
	frames float64

	// cells[row][col] holds a palette index or empty. Row r is staggered
	// by half a bubble when (r+stagger) is odd; adding a row flips stagger
	// so settled bubbles keep their place.
	cells   [][]int
	stagger int

	angle       float64
	lastPointer core.Pointer
	current     int
	next        int
	shot        core.Vec
	shotAngle   float64
	shotColor   int
	flying      bool
	shots       int
	score       int
	gameOver    bool
	particles   fx.Particles
}

// New creates a new Bubble Shooter instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "bubble" }
func (g *Game) Title() string { return "Bubble Shooter" }

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "aim with mouse or left/right, click or space to shoot"
}

func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadBubble(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.preset = config.ParsePreset(difficulty)
	g.configured = true
	return nil
}

// Reset fills the top rows and loads the cannon.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		g.cfg = config.Must(config.LoadBubble(""))
		g.configured = true
	}
	g.cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.frames = 0
	g.stagger = 0
	g.angle = -math.Pi / 2
	g.lastPointer = core.Pointer{}
	g.flying = false
	g.shots = 0
	g.score = 0
	g.gameOver = false
	g.particles.Reset()

	grid := g.cfg.Grid
	g.cells = make([][]int, grid.Rows)
	for r := range g.cells {
		g.cells[r] = make([]int, grid.Cols)
		for c := range g.cells[r] {
			g.cells[r][c] = empty
			if r < grid.StartRows && c < g.colsIn(r) {
				g.cells[r][c] = g.rng.Intn(g.colors())
			}
		}
	}

	g.current = g.pickColor()
	g.next = g.pickColor()
}

// colors is the number of palette entries in play.
func (g *Game) colors() int {
	return core.Clamp(g.cfg.Grid.Colors, 1, len(palette))
}

func (g *Game) staggered(row int) bool {
	return (row+g.stagger)%2 == 1
}

// colsIn is the number of usable slots in a row.
func (g *Game) colsIn(row int) int {
	if g.staggered(row) {
		return g.cfg.Grid.Cols - 1
	}
	return g.cfg.Grid.Cols
}

func (g *Game) rowHeight() float64 {
	return g.cfg.Grid.Radius * math.Sqrt(3)
}

// center returns the logical position of a grid slot.
func (g *Game) center(c Cell) core.Vec {
	r := g.cfg.Grid.Radius
	x := 2*r + float64(c.Col)*2*r
	if g.staggered(c.Row) {
		x += r
	}
	return core.Vec{X: x, Y: r + float64(c.Row)*g.rowHeight()}
}

func (g *Game) cannon() core.Vec {
	return core.Vec{X: Width / 2, Y: Height - cannonDrop}
}

func (g *Game) valid(c Cell) bool {
	return c.Row >= 0 && c.Row < len(g.cells) && c.Col >= 0 && c.Col < g.colsIn(c.Row)
}

func (g *Game) at(c Cell) int {
	if !g.valid(c) {
		return empty
	}
	return g.cells[c.Row][c.Col]
}

// neighbors lists the occupied slots touching c.
func (g *Game) neighbors(c Cell) []Cell {
	lo, hi := c.Col-1, c.Col
	if g.staggered(c.Row) {
		lo, hi = c.Col, c.Col+1
	}
	around := [6]Cell{
		{c.Row, c.Col - 1}, {c.Row, c.Col + 1},
		{c.Row - 1, lo}, {c.Row - 1, hi},
		{c.Row + 1, lo}, {c.Row + 1, hi},
	}
	out := make([]Cell, 0, 6)
	for _, n := range around {
		if g.at(n) != empty {
			out = append(out, n)
		}
	}
	return out
}

// pickColor chooses a colour still on the board so every shot can match.
// An empty board allows any colour.
func (g *Game) pickColor() int {
	onBoard := make([]bool, g.colors())
	for _, row := range g.cells {
		for _, v := range row {
			if v != empty {
				onBoard[v] = true
			}
		}
	}
	var choices []int
	for i, ok := range onBoard {
		if ok {
			choices = append(choices, i)
		}
	}
	if len(choices) == 0 {
		return g.rng.Intn(g.colors())
	}
	return choices[g.rng.Intn(len(choices))]
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.particles.Update(dt)
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.frames += dt

	g.aim(in, dt)
	if !g.flying && (in.Has(core.ActionFire) || in.Has(core.ActionConfirm) || in.Pointer.Clicked) {
		g.fire()
	}
	if g.flying {
		g.moveShot(dt)
	}
	return core.StepResult{State: g.State()}
}

// aim points the cannon at the pointer when it moves or clicks, otherwise
// turns it with the arrow keys.
func (g *Game) aim(in core.InputFrame, dt float64) {
	p := in.Pointer
	moved := p.X != g.lastPointer.X || p.Y != g.lastPointer.Y || !g.lastPointer.Valid
	g.lastPointer = p
	if p.Valid && (moved || p.Clicked) {
		g.aimAt(core.Vec{X: p.X, Y: p.Y})
		return
	}
	g.angle += in.Axis(core.ActionLeft, core.ActionRight) * g.cfg.Shot.AimSpeed * dt
	g.angle = g.clampAim(g.angle)
}

func (g *Game) aimAt(target core.Vec) {
	c := g.cannon()
	g.angle = g.clampAim(math.Atan2(target.Y-c.Y, target.X-c.X))
}

// clampAim keeps the aim pointing upward. A target below the cannon aims
// at the nearer side.
func (g *Game) clampAim(a float64) float64 {
	lo, hi := -math.Pi+g.cfg.Shot.MinAngle, -g.cfg.Shot.MinAngle
	if a >= 0 {
		if a > math.Pi/2 {
			return lo
		}
		return hi
	}
	return core.ClampF(a, lo, hi)
}

func (g *Game) fire() {
	g.shot = g.cannon()
	g.shotAngle = g.angle
	g.shotColor = g.current
	g.flying = true
	g.current = g.next
	g.next = g.pickColor()
	g.shots++
}

// moveShot flies the bubble in slices no longer than its radius so it
// cannot pass through a neighbour at large dt.
func (g *Game) moveShot(dt float64) {
	r := g.cfg.Grid.Radius
	dist := g.cfg.Shot.Speed * dt
	n := max(1, int(math.Ceil(dist/r)))
	step := dist / float64(n)

	for range n {
		g.shot.X += math.Cos(g.shotAngle) * step
		g.shot.Y += math.Sin(g.shotAngle) * step

		switch {
		case g.shot.X-r < 0:
			g.shot.X = r
			g.shotAngle = math.Pi - g.shotAngle
		case g.shot.X+r > Width:
			g.shot.X = Width - r
			g.shotAngle = math.Pi - g.shotAngle
		}

		if g.shot.Y-r < 0 || g.touching(g.shot) {
			g.land()
			return
		}
	}
}

// touching reports whether a bubble at p overlaps a settled one.
func (g *Game) touching(p core.Vec) bool {
	ball := core.Circle{X: p.X, Y: p.Y, R: g.cfg.Grid.Radius}
	for r, row := range g.cells {
		for c, v := range row {
			if v == empty {
				continue
			}
			at := g.center(Cell{r, c})
			if ball.Overlaps(core.Circle{X: at.X, Y: at.Y, R: g.cfg.Grid.Radius}) {
				return true
			}
		}
	}
	return false
}

// land snaps the flying bubble into the nearest free slot.
func (g *Game) land() {
	g.flying = false
	best, bestDist := Cell{-1, -1}, math.Inf(1)
	for r, row := range g.cells {
		for c := range g.colsIn(r) {
			if row[c] != empty {
				continue
			}
			if d := core.Distance(g.shot, g.center(Cell{r, c})); d < bestDist {
				best, bestDist = Cell{r, c}, d
			}
		}
	}
	if best.Row < 0 {
		g.gameOver = true
		return
	}
	g.cells[best.Row][best.Col] = g.shotColor
	g.settle(best)
}

// settle resolves a bubble that just landed at c: pop its cluster, drop
// whatever no longer hangs from the top, add a row when due and check
// the game over line.
func (g *Game) settle(c Cell) {
	sc := g.cfg.Scoring
	if cluster := g.cluster(c); len(cluster) >= sc.MinCluster {
		g.remove(cluster)
		g.score += len(cluster) * sc.Pop
		if loose := g.floating(); len(loose) > 0 {
			g.remove(loose)
			g.score += len(loose) * sc.Drop
		}
	}

	if g.shots >= g.shotsPerRow() {
		g.addRow()
		g.shots = 0
	}
	if g.reachedLine() {
		g.gameOver = true
	}
}

// shotsPerRow shrinks with difficulty down to half the configured value.
func (g *Game) shotsPerRow() int {
	base := float64(g.cfg.Shot.ShotsPerRow)
	n := g.difficulty.GapSize(base, base/2, g.score, g.frames)
	return max(1, int(math.Round(n)))
}

// cluster flood-fills the same-coloured group containing c.
func (g *Game) cluster(c Cell) []Cell {
	color := g.at(c)
	if color == empty {
		return nil
	}
	seen := map[Cell]bool{c: true}
	queue := []Cell{c}
	for i := 0; i < len(queue); i++ {
		for _, n := range g.neighbors(queue[i]) {
			if !seen[n] && g.at(n) == color {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return queue
}

// floating returns every bubble with no path to the top row.
func (g *Game) floating() []Cell {
	held := map[Cell]bool{}
	var queue []Cell
	for c := range g.colsIn(0) {
		if cell := (Cell{0, c}); g.at(cell) != empty {
			held[cell] = true
			queue = append(queue, cell)
		}
	}
	for i := 0; i < len(queue); i++ {
		for _, n := range g.neighbors(queue[i]) {
			if !held[n] {
				held[n] = true
				queue = append(queue, n)
			}
		}
	}

	var loose []Cell
	for r, row := range g.cells {
		for c, v := range row {
			if cell := (Cell{r, c}); v != empty && !held[cell] {
				loose = append(loose, cell)
			}
		}
	}
	return loose
}

func (g *Game) remove(cells []Cell) {
	for _, c := range cells {
		p := g.center(c)
		g.particles.Scatter(g.rng, p.X, p.Y, g.cfg.Scoring.Particles, 4, particleLife, palette[g.at(c)])
		g.cells[c.Row][c.Col] = empty
	}
}

// addRow pushes the grid down one row and fills a new top row. A bubble
// pushed off the bottom ends the run.
func (g *Game) addRow() {
	last := g.cells[len(g.cells)-1]
	for _, v := range last {
		if v != empty {
			g.gameOver = true
		}
	}
	copy(g.cells[1:], g.cells[:len(g.cells)-1])
	g.cells[0] = last
	g.stagger ^= 1

	for c := range g.cells[0] {
		g.cells[0][c] = empty
		if c < g.colsIn(0) {
			g.cells[0][c] = g.rng.Intn(g.colors())
		}
	}
}

// reachedLine reports whether any bubble sits on or below the game over row.
func (g *Game) reachedLine() bool {
	for r := g.cfg.Grid.GameOverRow; r < len(g.cells); r++ {
		for _, v := range g.cells[r] {
			if v != empty {
				return true
			}
		}
	}
	return false
}

// Render draws the grid, the cannon and the aim line.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)
	r := g.cfg.Grid.Radius

	lineY := float64(g.cfg.Grid.GameOverRow) * g.rowHeight()
	dst.Line(core.Vec{X: 0, Y: lineY}, core.Vec{X: Width, Y: lineY}, LineChar, core.ColorRed)

	for row, cols := range g.cells {
		for col, v := range cols {
			if v == empty {
				continue
			}
			p := g.center(Cell{row, col})
			dst.FillCircle(core.Circle{X: p.X, Y: p.Y, R: r}, BubbleChar, palette[v])
		}
	}

	c := g.cannon()
	dir := core.Vec{X: math.Cos(g.angle), Y: math.Sin(g.angle)}
	for d := 2 * r; d < aimLength; d += r {
		p := c.Add(dir.Scale(d))
		dst.Dot(p.X, p.Y, AimChar, core.ColorGray)
	}
	dst.FillCircle(core.Circle{X: c.X, Y: c.Y, R: 25}, '▒', core.ColorGray)
	dst.FillCircle(core.Circle{X: c.X, Y: c.Y, R: r}, BubbleChar, palette[g.current])
	dst.FillCircle(core.Circle{X: c.X - 50, Y: Height - 25, R: r}, BubbleChar, palette[g.next])

	if g.flying {
		dst.FillCircle(core.Circle{X: g.shot.X, Y: g.shot.Y, R: r}, BubbleChar, palette[g.shotColor])
	}
	g.particles.Render(dst)

	dst.HUD(0, fmt.Sprintf("Bubbles  Score: %d", g.score), core.ColorBrightWhite)
	dst.HUDRight(0, fmt.Sprintf("new row in %d", max(0, g.shotsPerRow()-g.shots)), core.ColorGray)
}

// State returns the current game state. The board never runs out, so a
// run only ends in a loss.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver}
}

func init() {
	registry.Register("bubble", func() registry.Game {
		return New()
	})
}
