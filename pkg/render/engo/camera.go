// pkg/render/engo/camera.go
package engo

import (
	"math"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// referenceRate is the frame rate the smoothing factor is specified at.
const referenceRate = 60.0

// CameraSystem follows the vehicle, leading it along its heading, and
// eases toward the target instead of snapping.
type CameraSystem struct {
	mu sync.Mutex

	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	pixelsPerMeter float32
	zoom           float32
	defaultZoom    float32
	minZoom        float32
	maxZoom        float32

	// smoothing is the fraction of the remaining distance closed per
	// 60 Hz frame; 0 or 1 disables easing.
	smoothing float64
	// lookAhead is how many seconds of travel the target leads the vehicle.
	lookAhead float64

	// keyboard enables zoom keys once engo's input manager is running.
	keyboard bool

	// Current camera state
	currentPos physics.Vector2D

	subs []*event.Subscription
}

// NewCameraSystem creates a camera from config.
func NewCameraSystem(cfg config.CameraConfig) *CameraSystem {
	return &CameraSystem{
		pixelsPerMeter: float32(cfg.Zoom),
		zoom:           1.0,
		defaultZoom:    1.0,
		minZoom:        0.25,
		maxZoom:        4.0,
		smoothing:      cfg.Smoothing,
		lookAhead:      cfg.LookAhead,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update eases toward the target and moves engo's camera.
func (cs *CameraSystem) Update(dt float32) {
	if cs.keyboard {
		cs.handleZoomInput()
	}

	cs.mu.Lock()
	if cs.targetSet {
		cs.follow(float64(dt))
	}
	pos, zoom := cs.currentPos, cs.zoom
	cs.mu.Unlock()

	if engo.Mailbox != nil {
		cs.applyCameraTransform(pos, zoom)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.GetZoom() * (1 + scrollY*0.1))
	}
	if engo.Input.Button(buttonZoomIn).Down() {
		cs.SetZoom(cs.GetZoom() * 1.02)
	}
	if engo.Input.Button(buttonZoomOut).Down() {
		cs.SetZoom(cs.GetZoom() * 0.98)
	}
}

// follow closes part of the gap to the target, scaled so the feel does not
// depend on the frame rate.
func (cs *CameraSystem) follow(dt float64) {
	if cs.smoothing <= 0 || cs.smoothing >= 1 || dt <= 0 {
		cs.currentPos = cs.target
		return
	}
	alpha := 1 - math.Pow(1-cs.smoothing, dt*referenceRate)
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(alpha))
}

// applyCameraTransform centers engo's camera on pos. The world is drawn
// with north up, so ground z maps to negative screen y.
func (cs *CameraSystem) applyCameraTransform(pos physics.Vector2D, zoom float32) {
	px := toPixels(pos, cs.pixelsPerMeter)
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: px.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: px.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: 1 / zoom})
}

// Track points the camera ahead of the vehicle. The first call places the
// camera directly.
func (cs *CameraSystem) Track(t vehicle.Telemetry) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.target = t.Position.Ground().Add(physics.Heading(t.Rotation, t.Velocity*cs.lookAhead))
	if !cs.targetSet {
		cs.currentPos = cs.target
	}
	cs.targetSet = true
}

// SetTarget sets the target position for the camera to follow
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.targetSet {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
}

// SnapTo restores the default framing over pos.
func (cs *CameraSystem) SnapTo(pos physics.Vector2D) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.target, cs.currentPos = pos, pos
	cs.targetSet = true
	cs.zoom = cs.defaultZoom
}

// Attach re-frames the camera whenever the vehicle is reset.
func (cs *CameraSystem) Attach(bus *event.Bus) {
	sub := bus.Subscribe(event.VehicleReset, func(e event.Event) {
		if ve, ok := e.(*event.VehicleEvent); ok {
			cs.SnapTo(ve.Position.Ground())
		}
	})
	cs.mu.Lock()
	cs.subs = append(cs.subs, sub)
	cs.mu.Unlock()
}

// Detach drops the event subscriptions.
func (cs *CameraSystem) Detach() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, sub := range cs.subs {
		sub.Cancel()
	}
	cs.subs = nil
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.currentPos
}

// GetTarget returns the point the camera is easing toward.
func (cs *CameraSystem) GetTarget() physics.Vector2D {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.target
}

// WorldToScreen converts ground coordinates to pixels in a view of the
// given size.
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D, width, height float32) engo.Point {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	scale := cs.pixelsPerMeter * cs.zoom
	rel := worldPos.Sub(cs.currentPos)
	return engo.Point{
		X: float32(rel.X)*scale + width/2,
		Y: -float32(rel.Y)*scale + height/2,
	}
}

// toPixels converts ground coordinates to engo world pixels.
func toPixels(pos physics.Vector2D, pixelsPerMeter float32) engo.Point {
	return engo.Point{
		X: float32(pos.X) * pixelsPerMeter,
		Y: -float32(pos.Y) * pixelsPerMeter,
	}
}
