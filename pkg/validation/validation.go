// Package validation provides range checks for tuning and configuration
// values and sanitization for user-supplied display strings.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxDriverNameLen bounds the name shown on the HUD.
const MaxDriverNameLen = 24

// Allow alphanumeric, spaces, hyphens, underscores and basic punctuation.
var validDriverNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.()]+$`)

// Finite rejects NaN and infinities.
func Finite(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, value)
	}
	return nil
}

// Positive requires value > 0.
func Positive(name string, value float64) error {
	if err := Finite(name, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, value)
	}
	return nil
}

// NonNegative requires value >= 0.
func NonNegative(name string, value float64) error {
	if err := Finite(name, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", name, value)
	}
	return nil
}

// InRange requires lo <= value <= hi.
func InRange(name string, value, lo, hi float64) error {
	if err := Finite(name, value); err != nil {
		return err
	}
	if value < lo || value > hi {
		return fmt.Errorf("%s out of range: %v (must be %v-%v)", name, value, lo, hi)
	}
	return nil
}

// IntInRange requires lo <= value <= hi.
func IntInRange(name string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s out of range: %d (must be %d-%d)", name, value, lo, hi)
	}
	return nil
}

// Less requires a < b.
func Less(nameA string, a float64, nameB string, b float64) error {
	if !(a < b) {
		return fmt.Errorf("%s (%v) must be less than %s (%v)", nameA, a, nameB, b)
	}
	return nil
}

// StrictlyIncreasing requires every element to exceed its predecessor.
func StrictlyIncreasing(name string, values []float64) error {
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			return fmt.Errorf("%s must be strictly increasing: index %d (%v) <= index %d (%v)",
				name, i, values[i], i-1, values[i-1])
		}
	}
	return nil
}

// OneOf requires value to be one of allowed.
func OneOf(name, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s: %q (must be one of %s)", name, value, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateDriverName validates and trims the name displayed on the HUD.
func ValidateDriverName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("driver name cannot be empty")
	}

	if len(name) > MaxDriverNameLen {
		return "", fmt.Errorf("driver name too long: %d characters (max %d)", len(name), MaxDriverNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("driver name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("driver name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("driver name contains control characters")
		}
	}

	if !validDriverNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("driver name contains invalid characters (only alphanumeric, spaces, hyphens, underscores, and basic punctuation allowed)")
	}

	return trimmed, nil
}
