package model

// SectionGeometry holds the page geometry of one section. It persists for
// the section's lifetime and changes only through the pending-to-active
// transition in the section package.
type SectionGeometry struct {
	Margins        Margins     `json:"margins"`
	HeaderDistance float64     `json:"header_distance"`
	FooterDistance float64     `json:"footer_distance"`
	PageSize       PageSize    `json:"page_size"`
	Columns        ColumnSpec  `json:"columns"`
	Orientation    Orientation `json:"orientation"`
}

// EffectivePageSize returns the page size with orientation applied.
// Landscape swaps width and height.
func (g SectionGeometry) EffectivePageSize() PageSize {
	if g.Orientation == OrientationLandscape && g.PageSize.Width < g.PageSize.Height {
		return PageSize{Width: g.PageSize.Height, Height: g.PageSize.Width}
	}
	return g.PageSize
}

// ContentWidth returns the usable width between the left and right margins.
func (g SectionGeometry) ContentWidth() float64 {
	size := g.EffectivePageSize()
	return ClampNonNegative(size.Width - g.Margins.Left - g.Margins.Right)
}

// ContentHeight returns the usable height between the top and bottom margins.
func (g SectionGeometry) ContentHeight() float64 {
	size := g.EffectivePageSize()
	return ClampNonNegative(size.Height - g.Margins.Top - g.Margins.Bottom)
}

// PendingGeometry is the per-field overlay of geometry changes scheduled by
// a section break. A nil field means "no change scheduled". Pending fields
// apply to the active geometry only at a page boundary; the first section's
// geometry bypasses the pending stage since no page exists yet.
type PendingGeometry struct {
	Margins        *Margins
	HeaderDistance *float64
	FooterDistance *float64
	PageSize       *PageSize
	Columns        *ColumnSpec
	Orientation    *Orientation
}

// IsEmpty reports whether no change is scheduled.
func (p PendingGeometry) IsEmpty() bool {
	return p.Margins == nil && p.HeaderDistance == nil && p.FooterDistance == nil &&
		p.PageSize == nil && p.Columns == nil && p.Orientation == nil
}

// BreakType represents the type of a section break.
type BreakType int

const (
	// BreakContinuous starts the new section on the current page. It may
	// still force a mid-page column re-flow when the column configuration
	// changes.
	BreakContinuous BreakType = iota
	// BreakNextPage starts the new section on a new page.
	BreakNextPage
	// BreakEvenPage starts the new section on the next even-numbered page.
	BreakEvenPage
	// BreakOddPage starts the new section on the next odd-numbered page.
	BreakOddPage
)

// String returns a human-readable representation of the break type.
func (bt BreakType) String() string {
	switch bt {
	case BreakContinuous:
		return "continuous"
	case BreakNextPage:
		return "nextPage"
	case BreakEvenPage:
		return "evenPage"
	case BreakOddPage:
		return "oddPage"
	default:
		return "unknown"
	}
}

// Parity represents a required page parity for a section start.
type Parity int

const (
	// ParityAny places no constraint on the starting page number.
	ParityAny Parity = iota
	// ParityEven requires an even-numbered starting page.
	ParityEven
	// ParityOdd requires an odd-numbered starting page.
	ParityOdd
)

// String returns a human-readable representation of the parity.
func (p Parity) String() string {
	switch p {
	case ParityAny:
		return "any"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "unknown"
	}
}

// SectionMarker is a section break carried in the block stream. Optional
// geometry fields are nil when the marker does not specify them. Note that
// an absent Columns field is not "inherit": scheduling always resets an
// unspecified column configuration to a single column.
type SectionMarker struct {
	Type BreakType

	Margins        *Margins
	HeaderDistance *float64
	FooterDistance *float64
	PageSize       *PageSize
	Columns        *ColumnSpec
	Orientation    *Orientation

	// FirstSection marks the document's first section, whose geometry is
	// written directly into the active state.
	FirstSection bool

	// RequirePageBoundary forces a page break regardless of break type.
	RequirePageBoundary bool

	// BalanceColumns, when non-nil, explicitly enables or disables column
	// balancing for the section this marker ends.
	BalanceColumns *bool

	// Position is the opaque document-position range of the marker,
	// passed through for downstream consumers.
	Position PositionRange
}

// BreakDecision is the outcome of scheduling one section break. It is a
// pure function of the marker and the current section state.
type BreakDecision struct {
	// ForcePageBreak requires the host to close the current page before
	// placing more content.
	ForcePageBreak bool `json:"force_page_break"`

	// ForceMidPageRegion requires a mid-page column re-flow: the content
	// collected so far on the page is balanced and a fresh column region
	// begins below it.
	ForceMidPageRegion bool `json:"force_mid_page_region"`

	// RequiredParity constrains the page number the next section starts
	// on. ParityAny means no constraint.
	RequiredParity Parity `json:"required_parity"`
}
