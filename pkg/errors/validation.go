package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateExtent validates the size of one region axis.
// Extents must be finite and strictly positive; a zero-width region has no
// interior to place nodes in.
func ValidateExtent(axis int, extent float64) error {
	if math.IsNaN(extent) || math.IsInf(extent, 0) {
		return New(ErrCodeInvalidRegion, "extent[%d] must be finite, got %g", axis, extent)
	}
	if extent <= 0 {
		return New(ErrCodeInvalidRegion, "extent[%d] must be positive, got %g", axis, extent)
	}
	return nil
}

// ValidateMargin validates a boundary margin against the extents it applies to.
// The margin may be zero but must leave a non-empty clamp interval on every axis.
func ValidateMargin(margin float64, extents []float64) error {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return New(ErrCodeInvalidRegion, "margin must be finite, got %g", margin)
	}
	if margin < 0 {
		return New(ErrCodeInvalidRegion, "margin must not be negative, got %g", margin)
	}
	for i, e := range extents {
		if 2*margin > e {
			return New(ErrCodeInvalidRegion, "margin %g leaves no room on axis %d (extent %g)", margin, i, e)
		}
	}
	return nil
}

// ValidateIterations rejects negative iteration counts. Zero is allowed and
// means "initial placement only".
func ValidateIterations(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidOptions, "iterations must not be negative, got %d", n)
	}
	return nil
}

// ValidateCooling validates a geometric cooling rate.
// Accepted range is (0, 1]; 1 keeps the temperature constant.
func ValidateCooling(rate float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate > 1 {
		return New(ErrCodeInvalidOptions, "cooling rate must be in (0, 1], got %g", rate)
	}
	return nil
}

// ValidateNonNegative validates a named finite parameter that may be zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOptions, "%s must be finite, got %g", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidOptions, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidatePositive validates a named finite parameter that must be above zero.
func ValidatePositive(name string, v float64) error {
	if err := ValidateNonNegative(name, v); err != nil {
		return err
	}
	if v == 0 {
		return New(ErrCodeInvalidOptions, "%s must be positive", name)
	}
	return nil
}

// ValidateNodeID validates a node identifier.
//
// The rules are intentionally small:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}
	if strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
	}
	return nil
}
