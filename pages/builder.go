package pages

import (
	"github.com/tsawler/pageflow/model"
)

// Page is one laid-out page: its geometry snapshot and the page state whose
// fragment list the layout core appended to.
type Page struct {
	// Number is the 1-indexed page number.
	Number int `json:"number"`

	// Size, Margins and Columns are the geometry the page was built with.
	Size    model.PageSize   `json:"size"`
	Margins model.Margins    `json:"margins"`
	Columns model.ColumnSpec `json:"columns"`

	// Blank marks a page inserted only to satisfy a section-start
	// parity requirement.
	Blank bool `json:"blank,omitempty"`

	state *model.PageState
}

// Fragments returns the page's fragments in placement order.
func (p *Page) Fragments() []*model.Fragment {
	if p.state == nil {
		return nil
	}
	return p.state.Fragments
}

// Builder is the reference implementation of the model.Cursor capability.
// It builds pages from the active section geometry and tracks the cursor
// through columns and column regions.
type Builder struct {
	geom  model.SectionGeometry
	pages []*Page
	state *model.PageState

	// Current column region: the spec in effect and the Y it starts at.
	regionColumns model.ColumnSpec
	regionTop     float64

	// onPageStart runs before each content page is built, so the host can
	// apply pending section geometry at every page boundary, natural
	// column wraps included.
	onPageStart func()
}

// NewBuilder creates a builder that will construct pages with the given
// geometry until it changes via SetGeometry.
func NewBuilder(geom model.SectionGeometry) *Builder {
	return &Builder{geom: geom}
}

// SetGeometry replaces the geometry used for pages created from now on.
// The current page is unaffected.
func (b *Builder) SetGeometry(geom model.SectionGeometry) {
	b.geom = geom
}

// OnPageStart registers a hook invoked before each content page is built.
// The hook may call SetGeometry; the new page picks the change up. Blank
// parity pages skip the hook and keep the geometry of the section that
// forced them.
func (b *Builder) OnPageStart(fn func()) {
	b.onPageStart = fn
}

// Geometry returns the geometry new pages are built with.
func (b *Builder) Geometry() model.SectionGeometry {
	return b.geom
}

// Pages returns the pages built so far.
func (b *Builder) Pages() []*Page {
	return b.pages
}

// HasPages reports whether any page has been created.
func (b *Builder) HasPages() bool {
	return len(b.pages) > 0
}

// EnsurePage returns the current page state, creating the first page when
// none exists yet.
func (b *Builder) EnsurePage() *model.PageState {
	if b.state == nil {
		b.newPage(false)
	}
	return b.state
}

// AdvanceColumn moves to the next column of the current region, wrapping to
// a new page when the columns are exhausted.
func (b *Builder) AdvanceColumn(state *model.PageState) *model.PageState {
	if state == nil {
		return b.EnsurePage()
	}
	if state.ColumnIndex+1 < b.regionColumns.Count {
		state.ColumnIndex++
		state.CursorY = b.regionTop
		state.ColumnTop = b.regionTop
		return state
	}
	return b.newPage(false)
}

// AdvancePage closes the current page unconditionally and starts a new one.
func (b *Builder) AdvancePage() *model.PageState {
	return b.newPage(false)
}

// EnsureParity inserts one blank page when the next page to be created
// would violate the required section-start parity. It must be called after
// the forced page break and before any content is placed.
func (b *Builder) EnsureParity(parity model.Parity) {
	if parity == model.ParityAny {
		return
	}
	next := len(b.pages) + 1
	if (parity == model.ParityEven && next%2 == 0) || (parity == model.ParityOdd && next%2 == 1) {
		return
	}
	b.newPage(true)
}

// ColumnX returns the X offset of the given column index in the current
// region.
func (b *Builder) ColumnX(index int) float64 {
	return b.geom.Margins.Left + b.regionColumns.ColumnOffset(index, b.geom.ContentWidth())
}

// ColumnWidth returns the usable width of one column in the current region.
func (b *Builder) ColumnWidth() float64 {
	return b.regionColumns.ColumnWidth(b.geom.ContentWidth())
}

// RegionColumns returns the column spec of the current region.
func (b *Builder) RegionColumns() model.ColumnSpec {
	return b.regionColumns
}

// RegionTop returns the Y the current column region starts at.
func (b *Builder) RegionTop() float64 {
	return b.regionTop
}

// StartRegion begins a fresh column region at the current cursor position
// with a new column configuration. Used for continuous section breaks that
// change columns mid-page.
func (b *Builder) StartRegion(columns model.ColumnSpec) *model.PageState {
	state := b.EnsurePage()
	b.regionColumns = sanitizeRegion(columns)
	b.regionTop = state.CursorY
	state.ColumnIndex = 0
	state.ColumnTop = b.regionTop
	return state
}

func (b *Builder) newPage(blank bool) *model.PageState {
	if !blank && b.onPageStart != nil {
		b.onPageStart()
	}
	size := b.geom.EffectivePageSize()
	state := &model.PageState{
		PageIndex:     len(b.pages),
		ColumnIndex:   0,
		CursorY:       b.geom.Margins.Top,
		ColumnTop:     b.geom.Margins.Top,
		ContentBottom: size.Height - b.geom.Margins.Bottom,
	}
	b.pages = append(b.pages, &Page{
		Number:  len(b.pages) + 1,
		Size:    size,
		Margins: b.geom.Margins,
		Columns: b.geom.Columns,
		Blank:   blank,
		state:   state,
	})
	b.state = state
	b.regionColumns = sanitizeRegion(b.geom.Columns)
	b.regionTop = b.geom.Margins.Top
	return state
}

func sanitizeRegion(c model.ColumnSpec) model.ColumnSpec {
	if c.Count < 1 {
		c.Count = 1
	}
	c.Gap = model.ClampNonNegative(c.Gap)
	return c
}
