// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/validation"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// EnvPrefix prefixes every environment override, e.g. DRIFT_LEVEL_TREECOUNT
// overrides level.treeCount.
const EnvPrefix = "DRIFT"

// Renderer names accepted by DisplayConfig.Renderer.
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererHeadless = "headless"
)

// GameConfig contains configuration for a drift session
type GameConfig struct {
	Vehicle    vehicle.Tuning    `json:"vehicle" mapstructure:"vehicle"`
	Dimensions entity.Dimensions `json:"dimensions" mapstructure:"dimensions"`
	Level      LevelConfig       `json:"level" mapstructure:"level"`
	Camera     CameraConfig      `json:"camera" mapstructure:"camera"`
	Audio      AudioConfig       `json:"audio" mapstructure:"audio"`
	Display    DisplayConfig     `json:"display" mapstructure:"display"`
}

// LevelConfig controls level generation. Distances are in meters.
type LevelConfig struct {
	PlayAreaSize      float64 `json:"playAreaSize" mapstructure:"playAreaSize"`
	TreeCount         int     `json:"treeCount" mapstructure:"treeCount"`
	PowerupCount      int     `json:"powerupCount" mapstructure:"powerupCount"`
	WallSegmentLength float64 `json:"wallSegmentLength" mapstructure:"wallSegmentLength"`

	TreeWallMargin      float64 `json:"treeWallMargin" mapstructure:"treeWallMargin"`
	TreeCenterClearance float64 `json:"treeCenterClearance" mapstructure:"treeCenterClearance"`
	TreeSpacing         float64 `json:"treeSpacing" mapstructure:"treeSpacing"`

	PowerupMargin  float64 `json:"powerupMargin" mapstructure:"powerupMargin"`
	PowerupSpacing float64 `json:"powerupSpacing" mapstructure:"powerupSpacing"`
	PowerupHeight  float64 `json:"powerupHeight" mapstructure:"powerupHeight"`

	// Seed makes layouts reproducible; 0 picks a random layout.
	Seed uint64 `json:"seed" mapstructure:"seed"`
}

// CameraConfig contains follow camera settings
type CameraConfig struct {
	// Zoom is in pixels per meter.
	Zoom float64 `json:"zoom" mapstructure:"zoom"`
	// Smoothing is the fraction of the remaining distance covered per frame.
	Smoothing float64 `json:"smoothing" mapstructure:"smoothing"`
	// LookAhead shifts the view along the velocity, in seconds of travel.
	LookAhead float64 `json:"lookAhead" mapstructure:"lookAhead"`
}

// AudioConfig contains engine sound settings
type AudioConfig struct {
	Enabled        bool    `json:"enabled" mapstructure:"enabled"`
	SampleRate     int     `json:"sampleRate" mapstructure:"sampleRate"`
	Volume         float64 `json:"volume" mapstructure:"volume"`
	ReferenceSpeed float64 `json:"referenceSpeed" mapstructure:"referenceSpeed"`
	BaseFrequency  float64 `json:"baseFrequency" mapstructure:"baseFrequency"`
}

// DisplayConfig selects and sizes the viewer
type DisplayConfig struct {
	Renderer   string `json:"renderer" mapstructure:"renderer"`
	Width      int    `json:"width" mapstructure:"width"`
	Height     int    `json:"height" mapstructure:"height"`
	FrameRate  int    `json:"frameRate" mapstructure:"frameRate"`
	DriverName string `json:"driverName" mapstructure:"driverName"`
	ShowHUD    bool   `json:"showHud" mapstructure:"showHud"`
	// CellSize is the number of meters one terminal cell covers.
	CellSize float64 `json:"cellSize" mapstructure:"cellSize"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Vehicle:    vehicle.DefaultTuning(),
		Dimensions: entity.DefaultDimensions(),
		Level: LevelConfig{
			PlayAreaSize:        200,
			TreeCount:           50,
			PowerupCount:        10,
			WallSegmentLength:   5,
			TreeWallMargin:      5,
			TreeCenterClearance: 10,
			TreeSpacing:         5,
			PowerupMargin:       10,
			PowerupSpacing:      8,
			PowerupHeight:       0.4,
		},
		Camera: CameraConfig{
			Zoom:      4,
			Smoothing: 0.1,
			LookAhead: 0.5,
		},
		Audio: AudioConfig{
			Enabled:        true,
			SampleRate:     44100,
			Volume:         1,
			ReferenceSpeed: 20,
			BaseFrequency:  55,
		},
		Display: DisplayConfig{
			Renderer:   RendererTerminal,
			Width:      1280,
			Height:     720,
			FrameRate:  60,
			DriverName: "Driver",
			ShowHUD:    true,
			CellSize:   2,
		},
	}
}

// LoadConfig builds a configuration from the defaults, the file at path
// (JSON, YAML or TOML by extension; skipped when path is empty) and DRIFT_
// environment overrides, in increasing priority. The result is validated.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	if err := registerDefaults(v, DefaultConfig()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// LoadFromEnv returns the defaults with DRIFT_ environment overrides
// applied.
func LoadFromEnv() (*GameConfig, error) {
	return LoadConfig("")
}

// registerDefaults flattens cfg into dotted keys so that every field is
// known to viper, which AutomaticEnv needs to resolve overrides on
// Unmarshal.
func registerDefaults(v *viper.Viper, cfg *GameConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to decode defaults: %w", err)
	}
	setDefaults(v, "", tree)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]interface{}); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every out of range value at once.
func (c *GameConfig) Validate() error {
	var errs []error
	if err := c.Vehicle.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("vehicle: %w", err))
	}
	errs = append(errs,
		c.validateDimensions(),
		c.validateLevel(),
		c.validateCamera(),
		c.validateAudio(),
		c.validateDisplay(),
	)
	return errors.Join(errs...)
}

func (c *GameConfig) validateDimensions() error {
	d := c.Dimensions
	return prefixed("dimensions", errors.Join(
		validation.Positive("wallLength", d.WallLength),
		validation.Positive("wallThickness", d.WallThickness),
		validation.Positive("wallHeight", d.WallHeight),
		validation.Positive("treeRadius", d.TreeRadius),
		validation.Positive("treeHeight", d.TreeHeight),
		validation.Positive("powerupSize", d.PowerupSize),
		validation.Finite("powerupSpin", d.PowerupSpin),
	))
}

func (c *GameConfig) validateLevel() error {
	l := c.Level
	return prefixed("level", errors.Join(
		validation.Positive("playAreaSize", l.PlayAreaSize),
		validation.IntInRange("treeCount", l.TreeCount, 0, 10000),
		validation.IntInRange("powerupCount", l.PowerupCount, 0, 1000),
		validation.InRange("wallSegmentLength", l.WallSegmentLength, 0.1, l.PlayAreaSize),
		validation.NonNegative("treeWallMargin", l.TreeWallMargin),
		validation.NonNegative("treeCenterClearance", l.TreeCenterClearance),
		validation.NonNegative("treeSpacing", l.TreeSpacing),
		validation.NonNegative("powerupMargin", l.PowerupMargin),
		validation.NonNegative("powerupSpacing", l.PowerupSpacing),
		validation.NonNegative("powerupHeight", l.PowerupHeight),
	))
}

func (c *GameConfig) validateCamera() error {
	return prefixed("camera", errors.Join(
		validation.Positive("zoom", c.Camera.Zoom),
		validation.InRange("smoothing", c.Camera.Smoothing, 0, 1),
		validation.NonNegative("lookAhead", c.Camera.LookAhead),
	))
}

func (c *GameConfig) validateAudio() error {
	a := c.Audio
	return prefixed("audio", errors.Join(
		validation.IntInRange("sampleRate", a.SampleRate, 8000, 192000),
		validation.InRange("volume", a.Volume, 0, 1),
		validation.Positive("referenceSpeed", a.ReferenceSpeed),
		validation.Positive("baseFrequency", a.BaseFrequency),
	))
}

func (c *GameConfig) validateDisplay() error {
	d := c.Display
	errs := []error{
		validation.OneOf("renderer", d.Renderer, RendererTerminal, RendererEngo, RendererHeadless),
		validation.IntInRange("width", d.Width, 1, 16384),
		validation.IntInRange("height", d.Height, 1, 16384),
		validation.IntInRange("frameRate", d.FrameRate, 1, 1000),
		validation.Positive("cellSize", d.CellSize),
	}
	if _, err := validation.ValidateDriverName(d.DriverName); err != nil {
		errs = append(errs, err)
	}
	return prefixed("display", errors.Join(errs...))
}

func prefixed(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", section, err)
}
