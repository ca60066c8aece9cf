package entity

// Dimensions are the standard level object sizes shared by physics and
// rendering. Vehicle size belongs to its tuning.
type Dimensions struct {
	WallLength    float64 `json:"wallLength" mapstructure:"wallLength"`
	WallThickness float64 `json:"wallThickness" mapstructure:"wallThickness"`
	WallHeight    float64 `json:"wallHeight" mapstructure:"wallHeight"`

	TreeRadius float64 `json:"treeRadius" mapstructure:"treeRadius"`
	TreeHeight float64 `json:"treeHeight" mapstructure:"treeHeight"`

	PowerupSize float64 `json:"powerupSize" mapstructure:"powerupSize"`
	// PowerupSpin is the display rotation rate in radians per second.
	PowerupSpin float64 `json:"powerupSpin" mapstructure:"powerupSpin"`
}

// DefaultDimensions returns the stock object sizes in meters.
func DefaultDimensions() Dimensions {
	return Dimensions{
		WallLength:    5.0,
		WallThickness: 2.0,
		WallHeight:    2.5,
		TreeRadius:    0.5,
		TreeHeight:    6.0,
		PowerupSize:   0.8,
		PowerupSpin:   2.0,
	}
}
