package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// viewMargin widens the culling rectangle so obstacles centered just
// off screen still draw their visible part.
const viewMargin = 6.0

var headingGlyphs = []rune("↑↗→↘↓↙←↖")

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTree    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePowerup = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleVehicle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBoost   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHUD     = tcell.StyleDefault.Reverse(true)
)

// TerminalRenderer draws a top-down view on a tcell screen. North (+z) is
// up. A cell is cellSize meters tall and half that wide, which keeps the
// map roughly square in most terminal fonts.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	cellSize  float64
	centerPos physics.Vector2D
}

// OpenTerminal initializes the controlling terminal as a tcell screen.
func OpenTerminal() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	screen.HideCursor()
	return screen, nil
}

// NewTerminalRenderer creates a renderer on an initialized screen.
func NewTerminalRenderer(screen tcell.Screen, cellSize float64) *TerminalRenderer {
	if !(cellSize > 0) {
		cellSize = 1
	}
	width, height := screen.Size()
	return &TerminalRenderer{
		screen:   screen,
		width:    width,
		height:   height,
		cellSize: cellSize,
	}
}

// Screen returns the underlying screen.
func (r *TerminalRenderer) Screen() tcell.Screen {
	return r.screen
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// View returns the visible ground area plus a margin.
func (r *TerminalRenderer) View() physics.Rect {
	return physics.Rect{
		Center: r.centerPos,
		Width:  float64(r.width)*r.cellSize/2 + 2*viewMargin,
		Height: float64(r.height)*r.cellSize + 2*viewMargin,
	}
}

// worldToScreen converts ground coordinates to a cell.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(math.Floor((pos.X-r.centerPos.X)/(r.cellSize/2))) + r.width/2
	y := r.height/2 - int(math.Floor((pos.Y-r.centerPos.Y)/r.cellSize)) - 1
	return x, y
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// Clear picks up the current terminal size and blanks the screen.
func (r *TerminalRenderer) Clear() {
	r.width, r.height = r.screen.Size()
	r.screen.Clear()
}

// RenderObstacle draws walls as a run of cells along their length and
// trees as a single glyph.
func (r *TerminalRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	center := obstacle.Position().Ground()
	if obstacle.Type() == entity.Tree {
		x, y := r.worldToScreen(center)
		r.set(x, y, '♣', styleTree)
		return
	}

	size := obstacle.Size()
	ch, step, length := '─', physics.Vector2D{X: r.cellSize / 2}, size.X
	if obstacle.Orientation() == entity.Vertical {
		ch, step, length = '│', physics.Vector2D{Y: r.cellSize}, size.Z
	}
	n := max(int(length/step.Length()), 1)
	start := center.Sub(step.Scale(float64(n-1) / 2))
	for i := 0; i < n; i++ {
		x, y := r.worldToScreen(start.Add(step.Scale(float64(i))))
		r.set(x, y, ch, styleWall)
	}
}

// RenderPowerup draws an active pickup.
func (r *TerminalRenderer) RenderPowerup(powerup *entity.Powerup) {
	x, y := r.worldToScreen(powerup.Position().Ground())
	r.set(x, y, '◆', stylePowerup)
}

// RenderVehicle draws an arrow pointing along the vehicle heading.
func (r *TerminalRenderer) RenderVehicle(t vehicle.Telemetry) {
	x, y := r.worldToScreen(t.Position.Ground())
	style := styleVehicle
	if t.NitrousActive {
		style = styleBoost
	}
	r.set(x, y, HeadingGlyph(t.Rotation), style)
}

// RenderHUD writes lines from the top left corner.
func (r *TerminalRenderer) RenderHUD(lines []string) {
	for row, line := range lines {
		col := 0
		for _, ch := range line {
			r.set(col, row, ch, styleHUD)
			col++
		}
	}
}

// Present flushes the frame to the terminal.
func (r *TerminalRenderer) Present() error {
	r.screen.Show()
	return nil
}

// Close restores the terminal.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

// HeadingGlyph returns the arrow closest to a heading in radians, where
// 0 points north.
func HeadingGlyph(rotation float64) rune {
	sector := int(math.Round(physics.NormalizeAngle(rotation)/(math.Pi/4))) % len(headingGlyphs)
	return headingGlyphs[sector]
}
