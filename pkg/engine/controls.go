package engine

import (
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// Controls are the driver intents for one frame. Forward wins over
// Backward when both are held.
type Controls struct {
	Forward  bool
	Backward bool
	// Throttle scales forward acceleration; 0 uses the vehicle's own
	// acceleration multiplier.
	Throttle float64
	// Steer is in [-1, 1]; negative steers left. It is scaled by the frame
	// time before reaching the vehicle.
	Steer float64
	// Drift is held; releasing it ends the drift.
	Drift   bool
	Nitrous bool
	Reset   bool
	Quit    bool
}

// Apply feeds the intents to v for a frame of deltaTime seconds.
func (c Controls) Apply(v *vehicle.Vehicle, deltaTime float64) {
	switch {
	case c.Forward && c.Throttle > 0:
		v.AccelerateForwardWith(c.Throttle)
	case c.Forward:
		v.AccelerateForward()
	case c.Backward:
		v.AccelerateBackward()
	}

	switch {
	case c.Drift && !v.IsDrifting():
		v.StartDrift()
	case !c.Drift && v.IsDrifting():
		v.StopDrift()
	}

	if steer := physics.Clamp(c.Steer, -1, 1); steer != 0 && deltaTime > 0 {
		v.Turn(steer * deltaTime)
	}
}
