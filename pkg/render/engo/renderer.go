// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// Draw order.
const (
	zWall    = 1
	zTree    = 2
	zPowerup = 2
	zVehicle = 3
)

// sprite bundles an entity with the components engo's render system reads.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements render.Renderer on engo's render system. Level
// objects get one entity each, created the first time they are drawn.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager
	camera       *CameraSystem
	hud          *HUDSystem

	pixelsPerMeter float32

	obstacles map[entity.ID]*sprite
	powerups  map[entity.ID]*sprite
	seen      map[entity.ID]bool
	vehicle   *sprite
	center    physics.Vector2D
}

// NewEngoRenderer creates a renderer. A nil render system keeps entities
// off screen, which is how the tests run without a window.
func NewEngoRenderer(rs *common.RenderSystem, assets *AssetManager, camera *CameraSystem, hud *HUDSystem) *EngoRenderer {
	return &EngoRenderer{
		renderSystem:   rs,
		assets:         assets,
		camera:         camera,
		hud:            hud,
		pixelsPerMeter: camera.pixelsPerMeter,
		obstacles:      make(map[entity.ID]*sprite),
		powerups:       make(map[entity.ID]*sprite),
		seen:           make(map[entity.ID]bool),
	}
}

// newSprite registers a fresh entity.
func (r *EngoRenderer) newSprite(drawable common.Drawable, c color.Color, z float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: drawable, Color: c}
	s.SetZIndex(z)
	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// place sizes s in meters and centers it on pos, rotated clockwise by
// rotation radians.
func (r *EngoRenderer) place(s *sprite, pos physics.Vector2D, width, height, rotation float64) {
	s.Width = float32(width) * r.pixelsPerMeter
	s.Height = float32(height) * r.pixelsPerMeter
	s.Rotation = float32(rotation * 180 / math.Pi)
	s.SetCenter(toPixels(pos, r.pixelsPerMeter))
}

// Clear starts a frame. Pickups not drawn again before Present are hidden.
func (r *EngoRenderer) Clear() {
	clear(r.seen)
}

// SetCenter records the view center; the camera follows the vehicle itself.
func (r *EngoRenderer) SetCenter(pos physics.Vector2D) {
	r.center = pos
}

// RenderObstacle implements render.Renderer. Obstacles never move, so they
// are placed once.
func (r *EngoRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	if _, ok := r.obstacles[obstacle.GetID()]; ok {
		return
	}
	z := float32(zWall)
	if obstacle.Type() == entity.Tree {
		z = zTree
	}
	s := r.newSprite(r.assets.ObstacleSprite(obstacle.Type()), ObstacleColor(obstacle.Type()), z)
	size := obstacle.Size()
	r.place(s, obstacle.Position().Ground(), size.X, size.Z, 0)
	r.obstacles[obstacle.GetID()] = s
}

// RenderPowerup implements render.Renderer.
func (r *EngoRenderer) RenderPowerup(powerup *entity.Powerup) {
	s, ok := r.powerups[powerup.GetID()]
	if !ok {
		s = r.newSprite(r.assets.PowerupSprite(), powerupColor, zPowerup)
		r.powerups[powerup.GetID()] = s
	}
	size := powerup.Size()
	r.place(s, powerup.Position().Ground(), size.X, size.Z, powerup.Rotation())
	s.Hidden = false
	r.seen[powerup.GetID()] = true
}

// RenderVehicle implements render.Renderer and points the camera.
func (r *EngoRenderer) RenderVehicle(t vehicle.Telemetry) {
	if r.vehicle == nil {
		r.vehicle = r.newSprite(r.assets.VehicleSprite(), vehicleColor, zVehicle)
	}
	r.vehicle.Color = vehicleColor
	if t.NitrousActive {
		r.vehicle.Color = boostColor
	}
	// The footprint is a circle of the collision radius, drawn a little
	// longer than wide.
	d := 2 * t.Radius
	r.place(r.vehicle, t.Position.Ground(), d*0.6, d, t.Rotation)
	r.camera.Track(t)
}

// RenderHUD implements render.Renderer.
func (r *EngoRenderer) RenderHUD(lines []string) {
	r.hud.SetLines(lines)
}

// Present hides pickups that were not drawn this frame. engo presents the
// frame itself.
func (r *EngoRenderer) Present() error {
	for id, s := range r.powerups {
		if !r.seen[id] {
			s.Hidden = true
		}
	}
	return nil
}

// ScreenPosition returns the pixel center of an entity that has been drawn.
func (r *EngoRenderer) ScreenPosition(id entity.ID) (engo.Point, bool) {
	if s, ok := r.obstacles[id]; ok {
		return s.Center(), true
	}
	if s, ok := r.powerups[id]; ok {
		return s.Center(), true
	}
	return engo.Point{}, false
}
