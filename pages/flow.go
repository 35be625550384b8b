package pages

import (
	"fmt"

	"github.com/tsawler/pageflow/columns"
	"github.com/tsawler/pageflow/model"
	"github.com/tsawler/pageflow/section"
	"github.com/tsawler/pageflow/tables"
)

// Item is one element of the ordered layout stream: a measured block or a
// section-break marker. Exactly one field is set.
type Item struct {
	Block  *model.Block
	Marker *model.SectionMarker
}

// BlockItem wraps a block as a stream item.
func BlockItem(blk *model.Block) Item {
	return Item{Block: blk}
}

// MarkerItem wraps a section-break marker as a stream item.
func MarkerItem(m model.SectionMarker) Item {
	return Item{Marker: &m}
}

// Config holds configuration for a layout pass.
type Config struct {
	// Geometry is the document-default section geometry.
	Geometry model.SectionGeometry

	// BaseMargins are the explicit margins section scheduling starts
	// from. Zero value falls back to Geometry.Margins.
	BaseMargins model.Margins

	// HeaderContentHeight and FooterContentHeight are the measured
	// heights of header and footer content; positive values grow the
	// effective top/bottom margins.
	HeaderContentHeight float64
	FooterContentHeight float64

	// Balancing configures the column balancer.
	Balancing columns.Config

	// DisableBalancing skips column balancing at section boundaries.
	// Content still wraps between columns.
	DisableBalancing bool

	// Tables configures the table fragmenter.
	Tables tables.Config

	// MaxPages aborts a runaway pass. Default: 10000.
	MaxPages int
}

// DefaultConfig returns sensible default configuration: US Letter pages
// with one-inch margins, single column.
func DefaultConfig() Config {
	return Config{
		Geometry: model.SectionGeometry{
			Margins:  model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
			PageSize: model.PageSize{Width: 612, Height: 792},
			Columns:  model.SingleColumn(),
		},
		Balancing: columns.DefaultConfig(),
		Tables:    tables.DefaultConfig(),
		MaxPages:  10000,
	}
}

// Result is the outcome of one layout pass.
type Result struct {
	// Pages are the built pages in order, including blank parity pages.
	Pages []*Page `json:"pages"`

	// Warnings are non-fatal issues encountered during the pass, such
	// as a balancing search that did not converge.
	Warnings []string `json:"warnings,omitempty"`
}

// AllFragments returns every fragment of every page in placement order.
func (r *Result) AllFragments() []*model.Fragment {
	var out []*model.Fragment
	for _, p := range r.Pages {
		out = append(out, p.Fragments()...)
	}
	return out
}

// Flow drives one layout pass: it owns the page builder, the section state
// machine, the balancer, and the table fragmenter. A Flow is used for a
// single Layout call.
type Flow struct {
	config     Config
	builder    *Builder
	balancer   *columns.Balancer
	fragmenter *tables.Fragmenter
	section    section.State
	warnings   []string

	// Region tracking for column balancing: fragments placed on the
	// current page since the current region began, and how the current
	// section started.
	region      []*model.Fragment
	regionPage  int
	sectionType model.BreakType
	balanceFlag *bool
}

// NewFlow creates a flow with default configuration.
func NewFlow() *Flow {
	return NewFlowWithConfig(DefaultConfig())
}

// NewFlowWithConfig creates a flow with custom configuration.
func NewFlowWithConfig(config Config) *Flow {
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}
	if config.BaseMargins == (model.Margins{}) {
		config.BaseMargins = config.Geometry.Margins
	}
	f := &Flow{
		config:     config,
		builder:    NewBuilder(config.Geometry),
		balancer:   columns.NewBalancerWithConfig(config.Balancing),
		fragmenter: tables.NewFragmenterWithConfig(config.Tables),
		section:    section.NewState(config.Geometry),
	}
	// Every page boundary applies pending section geometry, whether the
	// page came from a forced break or from content wrapping naturally.
	f.builder.OnPageStart(func() {
		f.section = section.ApplyPendingToActive(f.section)
		f.builder.SetGeometry(f.section.Active)
	})
	return f
}

// Layout runs one full pass over the stream and returns the built pages.
// The pass is deterministic: identical streams yield identical results.
func (f *Flow) Layout(items []Item) (*Result, error) {
	for i, item := range items {
		switch {
		case item.Marker != nil:
			f.handleMarker(*item.Marker)
		case item.Block != nil:
			var next *model.Block
			for j := i + 1; j < len(items); j++ {
				if items[j].Block != nil {
					next = items[j].Block
					break
				}
				if items[j].Marker != nil {
					break
				}
			}
			if err := f.placeBlock(item.Block, next); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("pages: stream item %d carries neither block nor marker", i)
		}
		if len(f.builder.Pages()) > f.config.MaxPages {
			return nil, fmt.Errorf("pages: layout exceeded %d pages", f.config.MaxPages)
		}
	}

	// The document's final section balances by default.
	if !f.config.DisableBalancing && columns.ShouldBalance(f.sectionType, f.balanceFlag, true) {
		f.balanceRegion()
	}

	return &Result{Pages: f.builder.Pages(), Warnings: f.warnings}, nil
}

// handleMarker closes the current section and schedules the next one.
func (f *Flow) handleMarker(m model.SectionMarker) {
	// The incoming break ends the current region; continuous boundaries
	// balance it.
	if !f.config.DisableBalancing && columns.ShouldBalance(m.Type, m.BalanceColumns, false) {
		f.balanceRegion()
	}

	f.section.HasPages = f.builder.HasPages()
	decision, st := section.ScheduleSectionBreak(m, f.section, f.config.BaseMargins,
		f.config.HeaderContentHeight, f.config.FooterContentHeight)
	f.section = st
	f.sectionType = m.Type
	f.balanceFlag = m.BalanceColumns

	if m.FirstSection && !f.builder.HasPages() {
		// Geometry went straight into the active state.
		f.builder.SetGeometry(f.section.Active)
		f.resetRegion()
		return
	}

	switch {
	case decision.ForcePageBreak:
		// The blank parity page, if any, belongs to the old section; the
		// page-start hook applies the pending geometry to the new page.
		f.builder.EnsureParity(decision.RequiredParity)
		f.builder.AdvancePage()
		f.resetRegion()
	case decision.ForceMidPageRegion:
		// Continuous break with a column change: the new column
		// configuration re-flows the rest of the page; everything
		// else waits for the next page boundary.
		cols := model.SingleColumn()
		if f.section.Pending.Columns != nil {
			cols = *f.section.Pending.Columns
		}
		f.builder.StartRegion(cols)
		f.resetRegion()
	}
}

// placeBlock routes one block to table fragmentation or direct placement.
func (f *Flow) placeBlock(blk *model.Block, next *model.Block) error {
	if blk.Type == model.BlockTypeTable {
		frags, err := f.fragmenter.Layout(f.builder, blk, f.builder.ColumnWidth())
		if err != nil {
			return err
		}
		f.track(frags...)
		return nil
	}
	f.placeFlowBlock(blk, next)
	return nil
}

// placeFlowBlock places a paragraph or image block, splitting breakable
// paragraphs at orphan/widow-respecting line boundaries when they overflow
// a column.
func (f *Flow) placeFlowBlock(blk *model.Block, next *model.Block) {
	state := f.builder.EnsurePage()
	height := blk.TotalHeight()

	// Keep-with-next: move to a fresh column when the pair cannot stay
	// together here but could on a fresh column.
	if blk.Constraints.KeepWithNext && next != nil && !state.AtColumnTop() {
		pair := height + next.TotalHeight()
		if pair > state.Remaining() && pair <= state.ColumnHeight() {
			state = f.builder.AdvanceColumn(state)
		}
	}

	fromLine := 0
	lineCount := blk.LineCount()

	for {
		if height <= state.Remaining() {
			f.emitFlowFragment(state, blk, fromLine, lineCount, height)
			return
		}

		rest := remainderBlock(blk, fromLine)
		if cut, ok := columns.SplitPoint(rest, state.Remaining()); ok {
			f.emitFlowFragment(state, blk, fromLine, fromLine+cut.BreakAfterLine, cut.HeightBefore)
			fromLine += cut.BreakAfterLine
			height = cut.HeightAfter
			state = f.builder.AdvanceColumn(state)
			continue
		}

		if state.AtColumnTop() {
			// Taller than a full column and unsplittable: place it
			// anyway so the pass terminates; the host clips.
			f.warn("block %q is taller than a full column and cannot be split", blk.ID)
			f.emitFlowFragment(state, blk, fromLine, lineCount, height)
			return
		}
		state = f.builder.AdvanceColumn(state)
	}
}

func (f *Flow) emitFlowFragment(state *model.PageState, blk *model.Block, fromLine, toLine int, height float64) {
	width := f.builder.ColumnWidth()
	if blk.Type == model.BlockTypeImage && blk.Image != nil && blk.Image.Width > 0 && blk.Image.Width < width {
		width = blk.Image.Width
	}
	frag := &model.Fragment{
		BlockID:     blk.ID,
		PageIndex:   state.PageIndex,
		ColumnIndex: state.ColumnIndex,
		X:           f.builder.ColumnX(state.ColumnIndex),
		Y:           state.CursorY,
		Width:       width,
		Height:      height,
		FromLine:    fromLine,
		ToLine:      toLine,
		Position:    blk.Position,
	}
	state.Append(frag)
	state.CursorY += height
	f.track(frag)
}

// remainderBlock views the unplaced tail of a paragraph block.
func remainderBlock(blk *model.Block, fromLine int) *model.Block {
	if fromLine == 0 {
		return blk
	}
	if fromLine > len(blk.LineHeights) {
		fromLine = len(blk.LineHeights)
	}
	return &model.Block{
		ID:          blk.ID,
		Type:        blk.Type,
		LineHeights: blk.LineHeights[fromLine:],
		Constraints: blk.Constraints,
	}
}

// track records fragments into the current balancing region, resetting the
// region whenever placement moved to a later page.
func (f *Flow) track(frags ...*model.Fragment) {
	for _, frag := range frags {
		if frag.PageIndex != f.regionPage {
			f.region = f.region[:0]
			f.regionPage = frag.PageIndex
		}
		f.region = append(f.region, frag)
	}
}

// balanceRegion redistributes the current page's region content across the
// region's columns. Content that already spans several columns filled its
// page naturally and is left alone.
func (f *Flow) balanceRegion() {
	defer f.resetRegion()

	cols := f.builder.RegionColumns()
	if !cols.IsMultiColumn() || len(f.region) == 0 {
		return
	}
	for _, frag := range f.region {
		if frag.ColumnIndex != 0 {
			return
		}
	}
	f.balancer.RebalancePositioned(f.region, cols, f.builder.Geometry().Margins,
		f.builder.RegionTop(), f.builder.Geometry().EffectivePageSize())

	// Pull the cursor back to the end of the last column's new content
	// so the next section continues below the balanced region.
	state := f.builder.EnsurePage()
	maxY := f.builder.RegionTop()
	for _, frag := range f.region {
		if end := frag.Y + frag.Height; end > maxY {
			maxY = end
		}
	}
	state.CursorY = maxY
}

func (f *Flow) resetRegion() {
	f.region = f.region[:0]
	if state := f.builder.EnsurePage(); state != nil {
		f.regionPage = state.PageIndex
	}
}

// warn records a non-fatal issue.
func (f *Flow) warn(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}
