// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-drift/pkg/entity"
)

const hudFontURL = "goregular.ttf"

// Palette.
var (
	backgroundColor = color.RGBA{34, 52, 34, 255}
	wallColor       = color.RGBA{150, 150, 150, 255}
	treeColor       = color.RGBA{30, 120, 40, 255}
	powerupColor    = color.RGBA{0, 200, 255, 255}
	vehicleColor    = color.RGBA{230, 60, 40, 255}
	boostColor      = color.RGBA{255, 200, 0, 255}
	hudColor        = color.RGBA{255, 255, 255, 255}
)

// Sprite masks. Rows run top to bottom with the vehicle nose at the top.
var (
	vehiclePattern = [][]int{
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 0, 0, 0, 0, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 0, 0, 0, 0, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 0, 0, 1, 1, 0},
	}

	treePattern = [][]int{
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 0, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 0, 1, 1},
		{1, 1, 0, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 0, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 1, 0, 0},
	}

	nitrousPattern = [][]int{
		{0, 0, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 0, 0, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 0, 0, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
	}
)

// AssetManager builds the drawables for each object kind and the HUD font.
// Textures need a GL context, so before LoadAssets the getters fall back
// to plain shapes.
type AssetManager struct {
	vehicleSprite common.Drawable
	treeSprite    common.Drawable
	nitrousSprite common.Drawable

	font *common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// Preload registers the embedded HUD font with engo's file loader.
func (am *AssetManager) Preload() error {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	return nil
}

// LoadAssets builds the sprite textures and the HUD font. It must run on
// the render thread after Preload.
func (am *AssetManager) LoadAssets() error {
	am.vehicleSprite = textureFromPattern(vehiclePattern, color.White)
	am.treeSprite = textureFromPattern(treePattern, color.White)
	am.nitrousSprite = textureFromPattern(nitrousPattern, color.White)

	font := &common.Font{URL: hudFontURL, FG: hudColor, Size: 16}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to create HUD font: %w", err)
	}
	am.font = font
	return nil
}

// Font returns the HUD font, or nil before LoadAssets.
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// VehicleSprite returns the drawable for the player's vehicle. Textures
// are white and tinted through the render component color.
func (am *AssetManager) VehicleSprite() common.Drawable {
	if am.vehicleSprite != nil {
		return am.vehicleSprite
	}
	return common.Triangle{TriangleType: common.TriangleIsosceles}
}

// ObstacleSprite returns the drawable for an obstacle kind.
func (am *AssetManager) ObstacleSprite(kind entity.ObstacleType) common.Drawable {
	if kind == entity.Tree {
		if am.treeSprite != nil {
			return am.treeSprite
		}
		return common.Circle{}
	}
	return common.Rectangle{}
}

// PowerupSprite returns the drawable for a pickup.
func (am *AssetManager) PowerupSprite() common.Drawable {
	if am.nitrousSprite != nil {
		return am.nitrousSprite
	}
	return common.Circle{}
}

// ObstacleColor returns the tint for an obstacle kind.
func ObstacleColor(kind entity.ObstacleType) color.Color {
	if kind == entity.Tree {
		return treeColor
	}
	return wallColor
}

// patternImage paints the set cells of pattern in c on a transparent image.
func patternImage(pattern [][]int, c color.Color) *image.NRGBA {
	height := len(pattern)
	width := 0
	for _, row := range pattern {
		width = max(width, len(row))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == 1 {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

// textureFromPattern uploads a mask as a texture.
func textureFromPattern(pattern [][]int, c color.Color) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(patternImage(pattern, c)))
}
