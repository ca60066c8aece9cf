// Package render draws the game world. Renderers are driven once per frame
// by DrawGame and only read game state.
package render

import (
	"context"

	"github.com/opd-ai/go-drift/pkg/engine"
	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/logging"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// Renderer receives one frame at a time, between Clear and Present.
type Renderer interface {
	Clear()
	SetCenter(pos physics.Vector2D)
	RenderObstacle(obstacle *entity.Obstacle)
	RenderPowerup(powerup *entity.Powerup)
	RenderVehicle(t vehicle.Telemetry)
	RenderHUD(lines []string)
	Present() error
}

// Viewport is implemented by renderers that show only part of the level.
// DrawGame queries the obstacle index with View and skips the rest.
type Viewport interface {
	View() physics.Rect
}

// DrawGame renders one frame of g centered on the vehicle.
func DrawGame(r Renderer, g *engine.Game) error {
	t := g.Telemetry()

	r.Clear()
	r.SetCenter(t.Position.Ground())

	obstacles := g.Obstacles.Obstacles()
	if vp, ok := r.(Viewport); ok {
		obstacles = g.Obstacles.Within(vp.View())
	}
	for _, o := range obstacles {
		r.RenderObstacle(o)
	}
	for _, p := range g.Powerups.Powerups() {
		if p.IsActive() {
			r.RenderPowerup(p)
		}
	}
	r.RenderVehicle(t)

	if g.Config.Display.ShowHUD {
		r.RenderHUD(HUDLines(g.Config.Display.DriverName, t))
	}
	return r.Present()
}

// NullRenderer draws nothing and logs each call at debug level. It backs
// the headless mode.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger.With("component", "renderer"),
	}
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// SetCenter implements Renderer.
func (d *NullRenderer) SetCenter(pos physics.Vector2D) {}

// RenderObstacle implements Renderer.
func (d *NullRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	ctx := context.Background()
	if obstacle == nil {
		d.logger.Debug(ctx, "RenderObstacle called with nil obstacle")
		return
	}
	d.logger.Debug(ctx, "RenderObstacle called",
		"obstacle_id", obstacle.GetID(),
		"obstacle_type", obstacle.Type().String(),
	)
}

// RenderPowerup implements Renderer.
func (d *NullRenderer) RenderPowerup(powerup *entity.Powerup) {
	ctx := context.Background()
	if powerup == nil {
		d.logger.Debug(ctx, "RenderPowerup called with nil powerup")
		return
	}
	d.logger.Debug(ctx, "RenderPowerup called",
		"powerup_id", powerup.GetID(),
		"powerup_type", powerup.Type().String(),
	)
}

// RenderVehicle implements Renderer.
func (d *NullRenderer) RenderVehicle(t vehicle.Telemetry) {
	d.logger.Debug(context.Background(), "RenderVehicle called",
		"vehicle_id", t.ID,
		"speed_kph", t.SpeedKPH(),
		"gear", t.GearLabel(),
	)
}

// RenderHUD implements Renderer.
func (d *NullRenderer) RenderHUD(lines []string) {}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	return nil
}
