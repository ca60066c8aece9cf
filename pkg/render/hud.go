package render

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// NitrousStatus describes the nitrous slot: the remaining burn while
// active, READY when held, and "--" when empty.
func NitrousStatus(t vehicle.Telemetry) string {
	switch {
	case t.NitrousActive:
		return fmt.Sprintf("BOOST %.1fs", t.NitrousRemaining)
	case t.HasNitrous:
		return "READY"
	default:
		return "--"
	}
}

// HUDLines formats the dashboard shared by every renderer.
func HUDLines(driver string, t vehicle.Telemetry) []string {
	drift := "--"
	if t.Drifting {
		drift = fmt.Sprintf("%+.0f deg", t.DriftAngle*180/math.Pi)
	}
	return []string{
		fmt.Sprintf("%s  %3.0f km/h  GEAR %s  %4.0f RPM", driver, t.SpeedKPH(), t.GearLabel(), t.RPM),
		fmt.Sprintf("NITRO %s  DRIFT %s", NitrousStatus(t), drift),
	}
}
