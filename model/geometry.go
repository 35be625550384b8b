package model

import "math"

// Margins represents the four page margins in points.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// PageSize represents page dimensions in points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Orientation represents page orientation.
type Orientation int

const (
	// OrientationPortrait is the default orientation.
	OrientationPortrait Orientation = iota
	// OrientationLandscape swaps the page's long and short edges.
	OrientationLandscape
)

// String returns a human-readable representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// ColumnSpec describes the column configuration of a section.
type ColumnSpec struct {
	// Count is the number of columns (1 for single-column layout)
	Count int `json:"count" yaml:"count"`

	// Gap is the horizontal space between adjacent columns in points
	Gap float64 `json:"gap" yaml:"gap"`
}

// SingleColumn is the configuration every section without an explicit
// column spec resets to. Absence of a spec never means "inherit".
func SingleColumn() ColumnSpec {
	return ColumnSpec{Count: 1, Gap: 0}
}

// Equal reports whether two column configurations are the same.
func (c ColumnSpec) Equal(other ColumnSpec) bool {
	return c.Count == other.Count && c.Gap == other.Gap
}

// IsMultiColumn reports whether the configuration has more than one column.
func (c ColumnSpec) IsMultiColumn() bool {
	return c.Count > 1
}

// ColumnWidth returns the width of a single column for the given usable
// content width. The result is clamped to a non-negative value.
func (c ColumnSpec) ColumnWidth(contentWidth float64) float64 {
	count := c.Count
	if count < 1 {
		count = 1
	}
	w := (contentWidth - c.Gap*float64(count-1)) / float64(count)
	return ClampNonNegative(w)
}

// ColumnOffset returns the X offset of column index relative to the left
// content edge for the given usable content width.
func (c ColumnSpec) ColumnOffset(index int, contentWidth float64) float64 {
	if index < 0 {
		index = 0
	}
	return float64(index) * (c.ColumnWidth(contentWidth) + c.Gap)
}

// ClampNonNegative returns v, or 0 when v is negative or not a finite
// number. Malformed numeric inputs are clamped rather than rejected.
func ClampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SanitizeLength returns v when it is a finite positive number, otherwise
// the supplied fallback.
func SanitizeLength(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fallback
	}
	return v
}
