package model

// PageState is the host page builder's view of the current page and column.
// CursorY grows downward; the usable vertical space left in the current
// column is ContentBottom - CursorY.
type PageState struct {
	// PageIndex is the 0-based page number.
	PageIndex int

	// ColumnIndex is the 0-based column the cursor is in.
	ColumnIndex int

	// CursorY is the current vertical position on the page.
	CursorY float64

	// ColumnTop is the Y position content starts at in the current
	// column region.
	ColumnTop float64

	// ContentBottom is the usable height ceiling of the page content box.
	ContentBottom float64

	// Fragments is the append-only fragment list of the current page.
	Fragments []*Fragment
}

// Remaining returns the usable height left in the current column.
func (s *PageState) Remaining() float64 {
	return ClampNonNegative(s.ContentBottom - s.CursorY)
}

// ColumnHeight returns the full usable height of the current column region.
func (s *PageState) ColumnHeight() float64 {
	return ClampNonNegative(s.ContentBottom - s.ColumnTop)
}

// AtColumnTop reports whether the cursor sits at the top of its column,
// with the whole column height still available.
func (s *PageState) AtColumnTop() bool {
	return s.CursorY <= s.ColumnTop
}

// Append adds a fragment to the page's fragment list.
func (s *PageState) Append(f *Fragment) {
	s.Fragments = append(s.Fragments, f)
}

// Cursor is the narrow page-building capability the layout core consumes.
// The core never constructs pages itself; it asks the host for the current
// page state, advances columns, and resolves column X offsets. The pages
// package provides the reference implementation; tests substitute stubs.
type Cursor interface {
	// EnsurePage returns the current page state, creating the first page
	// when none exists yet.
	EnsurePage() *PageState

	// AdvanceColumn moves to the next column, wrapping to a new page
	// when the current page's columns are exhausted.
	AdvanceColumn(state *PageState) *PageState

	// ColumnX returns the X offset of the given column index on the
	// current page.
	ColumnX(index int) float64
}
