// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-drift/pkg/engine"
	"github.com/opd-ai/go-drift/pkg/logging"
	"github.com/opd-ai/go-drift/pkg/render"
)

// GameScene drives an engine.Game from engo's frame loop.
type GameScene struct {
	game    *engine.Game
	onFrame func(*engine.Game) error
	logger  *logging.Logger

	world    *ecs.World
	assets   *AssetManager
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	err error
}

// NewGameScene creates a scene for game. onFrame, if not nil, runs after
// every step.
func NewGameScene(game *engine.Game, onFrame func(*engine.Game) error, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	camera := NewCameraSystem(game.Config.Camera)
	hud := NewHUDSystem()
	assets := NewAssetManager()
	return &GameScene{
		game:     game,
		onFrame:  onFrame,
		logger:   logger.With("component", "engo"),
		assets:   assets,
		camera:   camera,
		hud:      hud,
		input:    NewInputSystem(),
		renderer: NewEngoRenderer(nil, assets, camera, hud),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "DriftScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.Preload(); err != nil {
		scene.fail(err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		world = &ecs.World{}
	}
	scene.world = world
	common.SetBackground(backgroundColor)

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.fail(err)
		return
	}
	scene.renderer = NewEngoRenderer(rs, scene.assets, scene.camera, scene.hud)
	scene.hud.attach(rs, scene.assets.Font())

	SetupInputBindings()
	scene.camera.keyboard = true
	scene.camera.Attach(scene.game.EventBus)

	// Systems update in insertion order: sample input, step, then draw.
	world.AddSystem(scene.input)
	world.AddSystem(&stepSystem{scene: scene})
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.logger.Info(scene.game.Context(), "scene ready",
		"obstacles", scene.game.Obstacles.Count(),
		"powerups", scene.game.Powerups.Count(),
	)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.camera.Detach()
}

// frame steps the game with controls and draws the result. It returns
// false when the scene should close.
func (scene *GameScene) frame(dt float64, controls engine.Controls) bool {
	if controls.Quit {
		return false
	}
	scene.game.Step(dt, controls)
	if err := render.DrawGame(scene.renderer, scene.game); err != nil {
		scene.fail(err)
		return false
	}
	if scene.onFrame != nil {
		if err := scene.onFrame(scene.game); err != nil {
			scene.fail(logging.WrapError(err, "frame %d", scene.game.CurrentTick))
			return false
		}
	}
	return true
}

func (scene *GameScene) fail(err error) {
	if scene.err == nil {
		scene.err = err
		scene.logger.Error(scene.game.Context(), "scene failed", err)
	}
}

// Err returns the error that closed the scene, if any.
func (scene *GameScene) Err() error {
	return scene.err
}

// stepSystem advances the game once per engo frame.
type stepSystem struct {
	scene *GameScene
}

func (s *stepSystem) Remove(ecs.BasicEntity) {}

func (s *stepSystem) Update(dt float32) {
	if !s.scene.frame(float64(dt), s.scene.input.Controls()) {
		engo.Exit()
	}
}

// Run opens a window and plays game until the window closes, the quit key
// is pressed or ctx is cancelled.
func Run(ctx context.Context, game *engine.Game, onFrame func(*engine.Game) error, logger *logging.Logger) error {
	display := game.Config.Display
	scene := NewGameScene(game, onFrame, logger)

	stop := context.AfterFunc(ctx, engo.Exit)
	defer stop()

	engo.Run(engo.RunOptions{
		Title:    "go-drift: " + display.DriverName,
		Width:    display.Width,
		Height:   display.Height,
		FPSLimit: display.FrameRate,
	}, scene)

	if scene.err != nil {
		return scene.err
	}
	return ctx.Err()
}
