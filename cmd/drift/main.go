// cmd/drift/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-drift/pkg/audio"
	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/engine"
	"github.com/opd-ai/go-drift/pkg/logging"
	"github.com/opd-ai/go-drift/pkg/render"
	engorender "github.com/opd-ai/go-drift/pkg/render/engo"
)

// terminalLogFile keeps log lines off the screen tcell draws on.
const terminalLogFile = "drift.log"

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON, YAML or TOML)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	rendererName := flag.String("renderer", "", "Renderer: terminal, engo or headless (overrides config)")
	logPath := flag.String("log", "", "Log file (default stdout, or "+terminalLogFile+" for the terminal renderer)")
	flag.Parse()

	os.Exit(run(*configPath, *createDefault, *rendererName, *logPath))
}

func run(configPath string, createDefault bool, rendererName, logPath string) int {
	ctx := context.Background()

	if createDefault {
		logger := logging.NewLogger()
		if configPath == "" {
			configPath = "drift.json"
		}
		if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", configPath,
			)
			return 1
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", configPath,
		)
		return 0
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drift: %v\n", err)
		return 1
	}
	if rendererName != "" {
		cfg.Display.Renderer = rendererName
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "drift: %v\n", err)
			return 1
		}
	}

	if logPath == "" && cfg.Display.Renderer == config.RendererTerminal {
		logPath = terminalLogFile
	}
	logger, closeLog, err := openLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drift: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithSessionID(ctx, "")

	logger.Info(ctx, "Starting go-drift",
		"renderer", cfg.Display.Renderer,
		"config_path", configPath,
		"driver", cfg.Display.DriverName,
	)

	game, err := engine.NewGame(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		return 1
	}

	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Start(ctx); err != nil {
		// Sound is optional; keep driving without it.
		logger.Warn(ctx, "Audio unavailable", "error", err.Error())
	}
	player.Attach(game.EventBus)
	defer player.Stop()

	onFrame := func(g *engine.Game) error {
		player.Update(g.Telemetry())
		return nil
	}

	switch cfg.Display.Renderer {
	case config.RendererEngo:
		err = engorender.Run(ctx, game, onFrame, logger)
	case config.RendererHeadless:
		err = runHeadless(ctx, game, onFrame, logger)
	default:
		err = runTerminal(ctx, game, onFrame)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Game stopped with error", err)
		return 1
	}
	logger.Info(ctx, "Game stopped",
		"ticks", game.CurrentTick,
		"elapsed", game.ElapsedTime,
	)
	return 0
}

// openLogger returns a logger on path, or on stdout when path is empty.
func openLogger(path string) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.NewLogger(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := logging.ParseLevel(os.Getenv("DRIFT_LOG_LEVEL"))
	return logging.NewLoggerWithWriter(f, level), func() { f.Close() }, nil
}

// runTerminal plays in the controlling terminal until Q, Escape or a signal.
func runTerminal(ctx context.Context, game *engine.Game, onFrame func(*engine.Game) error) error {
	screen, err := render.OpenTerminal()
	if err != nil {
		return err
	}
	renderer := render.NewTerminalRenderer(screen, game.Config.Display.CellSize)
	defer renderer.Close()

	input := render.NewKeyboardInput(render.DefaultHoldWindow)
	go input.Listen(screen)

	return game.Run(ctx, input.Controls, func(g *engine.Game) error {
		if err := onFrame(g); err != nil {
			return err
		}
		return render.DrawGame(renderer, g)
	})
}

// runHeadless steps the simulation with no input until a signal arrives.
func runHeadless(ctx context.Context, game *engine.Game, onFrame func(*engine.Game) error, logger *logging.Logger) error {
	renderer := render.NewNullRenderer(logger)
	return game.Run(ctx, nil, func(g *engine.Game) error {
		if err := onFrame(g); err != nil {
			return err
		}
		return render.DrawGame(renderer, g)
	})
}
