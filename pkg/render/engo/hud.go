// pkg/render/engo/hud.go
package engo

import (
	"slices"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// hudZIndex keeps the dashboard above the world.
const hudZIndex = 100

// HUDSystem draws the dashboard text in screen space.
type HUDSystem struct {
	lines []string
	dirty bool

	font *common.Font
	text *sprite
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

// attach creates the text entity once the font exists.
func (hud *HUDSystem) attach(rs *common.RenderSystem, font *common.Font) {
	hud.font = font
	hud.text = &sprite{BasicEntity: ecs.NewBasic()}
	hud.text.RenderComponent = common.RenderComponent{
		Drawable: common.Text{Font: font},
		Color:    hudColor,
	}
	hud.text.SetShader(common.HUDShader)
	hud.text.SetZIndex(hudZIndex)
	hud.text.SpaceComponent = common.SpaceComponent{Position: engo.Point{X: 10, Y: 10}}
	rs.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
	hud.dirty = true
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update rebuilds the text drawable when the lines changed.
func (hud *HUDSystem) Update(dt float32) {
	if !hud.dirty || hud.text == nil {
		return
	}
	hud.text.Drawable = common.Text{Font: hud.font, Text: hud.Text(), LineSpacing: 0.25}
	hud.dirty = false
}

// SetLines replaces the dashboard contents.
func (hud *HUDSystem) SetLines(lines []string) {
	if slices.Equal(hud.lines, lines) {
		return
	}
	hud.lines = slices.Clone(lines)
	hud.dirty = true
}

// Text returns the dashboard as one block.
func (hud *HUDSystem) Text() string {
	return strings.Join(hud.lines, "\n")
}
