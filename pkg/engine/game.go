// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/logging"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// maxFrameTime caps the wall clock delta fed to Step so a stalled frame
// does not tunnel the vehicle through a wall.
const maxFrameTime = 0.1

// Game represents the core game state and logic. It is not safe for
// concurrent use; drive it from one goroutine.
type Game struct {
	Config    *config.GameConfig
	Vehicle   *vehicle.Vehicle
	Obstacles *ObstacleField
	Powerups  *PowerupField
	EventBus  *event.Bus
	Stats     LevelStats

	Running     bool
	CurrentTick uint64
	ElapsedTime float64 // seconds of simulated time
	LastUpdate  time.Time

	ctx    context.Context
	logger *logging.Logger
}

// NewGame validates cfg, generates the level and spawns the vehicle at the
// origin.
func NewGame(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.GetSessionID(ctx) == "" {
		ctx = logging.WithSessionID(ctx, "")
	}

	level := GenerateLevel(cfg.Level, cfg.Dimensions)
	game := &Game{
		Config:     cfg,
		Vehicle:    vehicle.New(physics.Vector3{}, cfg.Vehicle),
		Obstacles:  level.Obstacles,
		Powerups:   level.Powerups,
		EventBus:   event.NewEventBus(),
		Stats:      level.Stats,
		LastUpdate: time.Now(),
		ctx:        ctx,
		logger:     logger.With("component", "engine"),
	}

	game.logger.Info(ctx, "level generated",
		"walls", level.Stats.Walls,
		"trees", level.Stats.Trees,
		"powerups", level.Stats.Powerups,
		"play_area", cfg.Level.PlayAreaSize,
		"seed", cfg.Level.Seed,
	)
	if level.Stats.DegradedTrees > 0 || level.Stats.DegradedPickups > 0 {
		game.logger.Warn(ctx, "placement constraints not met",
			"trees", level.Stats.DegradedTrees,
			"powerups", level.Stats.DegradedPickups,
		)
	}

	return game, nil
}

// Context returns the session context the game logs with.
func (g *Game) Context() context.Context {
	return g.ctx
}

// Step advances the game by one frame: controls, vehicle integration,
// obstacle push-out, then powerup pickup. A Reset control resets the game
// instead of integrating.
func (g *Game) Step(deltaTime float64, controls Controls) {
	if controls.Reset {
		g.Reset()
		return
	}

	dt := vehicle.SanitizeDelta(deltaTime, g.Config.Vehicle.MaxDeltaTime)

	controls.Apply(g.Vehicle, dt)
	if controls.Nitrous && g.Vehicle.ActivateNitrous() {
		g.publishVehicleEvent(event.NitrousActivated)
		g.logger.Debug(g.ctx, "nitrous activated", "remaining", g.Vehicle.NitrousRemaining())
	}

	result := g.Vehicle.Update(dt)
	if result.GearChanged() {
		g.EventBus.Publish(event.NewGearEvent(g, g.Vehicle.GetID(), result.PreviousGear, result.Gear))
		g.logger.Debug(g.ctx, "gear changed", "from", result.PreviousGear, "to", result.Gear)
	}
	if result.NitrousDepleted {
		g.publishVehicleEvent(event.NitrousDepleted)
	}

	g.Obstacles.Update(dt)
	if hit := g.Obstacles.HandleCollisions(g.Vehicle); hit != nil {
		g.EventBus.Publish(hit)
		g.logger.Debug(g.ctx, "obstacle hit", "obstacle", hit.OtherID, "overlap", hit.Overlap)
	}

	g.Powerups.Update(dt)
	for _, pickup := range g.Powerups.HandleCollisions(g.Vehicle) {
		g.EventBus.Publish(pickup)
		g.logger.Info(g.ctx, "nitrous collected", "powerup", pickup.OtherID, "remaining_pickups", g.Powerups.Active())
	}

	g.ElapsedTime += dt
	g.CurrentTick++
}

// Reset puts the vehicle back at its spawn point and restores the level.
// It publishes VehicleReset and then LevelReset.
func (g *Game) Reset() {
	reset := g.Vehicle.Reset()
	g.Obstacles.Reset()
	g.Powerups.Reset()
	g.ElapsedTime = 0

	g.EventBus.Publish(event.NewVehicleEvent(event.VehicleReset, g, reset.VehicleID, reset.Position, reset.Rotation))
	g.EventBus.Publish(event.NewLevelEvent(event.LevelReset, g, g.Obstacles.Count(), g.Powerups.Count()))
	g.logger.Info(g.ctx, "game reset")
}

// Telemetry returns the vehicle snapshot consumers render from.
func (g *Game) Telemetry() vehicle.Telemetry {
	return g.Vehicle.Telemetry()
}

func (g *Game) publishVehicleEvent(eventType event.Type) {
	g.EventBus.Publish(event.NewVehicleEvent(eventType, g, g.Vehicle.GetID(), g.Vehicle.Position(), g.Vehicle.Rotation()))
}

// Run steps the game at the configured frame rate until ctx is cancelled,
// input reports Quit or frame returns an error. input is polled once per
// frame; frame, if not nil, runs after each step.
func (g *Game) Run(ctx context.Context, input func() Controls, frame func(*Game) error) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.Config.Display.FrameRate))
	defer ticker.Stop()

	g.Running = true
	g.LastUpdate = time.Now()
	defer func() { g.Running = false }()

	g.logger.Info(g.ctx, "game loop started", "frame_rate", g.Config.Display.FrameRate)
	for {
		select {
		case <-ctx.Done():
			g.logger.Info(g.ctx, "game loop stopped", "ticks", g.CurrentTick, "elapsed", g.ElapsedTime)
			return ctx.Err()
		case <-ticker.C:
		}

		var controls Controls
		if input != nil {
			controls = input()
		}
		if controls.Quit {
			g.logger.Info(g.ctx, "game loop stopped", "ticks", g.CurrentTick, "elapsed", g.ElapsedTime)
			return nil
		}

		g.Step(g.calculateDeltaTime(), controls)

		if frame != nil {
			if err := frame(g); err != nil {
				return logging.WrapError(err, "frame %d", g.CurrentTick)
			}
		}
	}
}

// calculateDeltaTime calculates the time since the last update and caps it.
func (g *Game) calculateDeltaTime() float64 {
	now := time.Now()
	deltaTime := now.Sub(g.LastUpdate).Seconds()
	g.LastUpdate = now

	if deltaTime > maxFrameTime {
		deltaTime = maxFrameTime
	}
	return deltaTime
}
