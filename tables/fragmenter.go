package tables

import (
	"fmt"

	"github.com/tsawler/pageflow/model"
)

// Config holds configuration for table fragmentation.
type Config struct {
	// MinPartialRowHeight is the smallest leftover space, in points,
	// worth starting a mid-row split in. Below it the row moves to the
	// next column whole.
	// Default: 10 points
	MinPartialRowHeight float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinPartialRowHeight: 10.0,
	}
}

// Fragmenter converts measured table blocks into page/column fragments.
// It is stateless between tables and safe to reuse.
type Fragmenter struct {
	config Config
}

// NewFragmenter creates a fragmenter with default configuration.
func NewFragmenter() *Fragmenter {
	return &Fragmenter{config: DefaultConfig()}
}

// NewFragmenterWithConfig creates a fragmenter with custom configuration.
func NewFragmenterWithConfig(config Config) *Fragmenter {
	if config.MinPartialRowHeight <= 0 {
		config.MinPartialRowHeight = DefaultConfig().MinPartialRowHeight
	}
	return &Fragmenter{config: config}
}

// pendingPartial tracks a split row carried across columns.
type pendingPartial struct {
	row       int
	fromLines []int
}

// fragmentPlan is the outcome of fitting rows into one column visit.
type fragmentPlan struct {
	toRow         int
	repeatHeaders int
	height        float64
	partial       *model.PartialRow
	advanceOnly   bool
}

// Layout fragments one table block against the host cursor, appending the
// produced fragments to the pages they land on. columnWidth is the usable
// width of the section's columns; the table's indent is subtracted from it
// and the result clamped to a non-negative floor.
//
// Structural inconsistencies in the block (missing measurements, header
// count beyond the measured rows) surface as errors; malformed numeric
// fields are clamped instead.
func (f *Fragmenter) Layout(cursor model.Cursor, blk *model.Block, columnWidth float64) ([]*model.Fragment, error) {
	if blk == nil || blk.Type != model.BlockTypeTable || blk.Table == nil {
		return nil, fmt.Errorf("tables: block %q has no table measurements", blockID(blk))
	}
	t := blk.Table
	if t.HeaderRows < 0 || t.HeaderRows > len(t.Rows) {
		return nil, fmt.Errorf("tables: block %q header row count %d outside measured rows %d", blk.ID, t.HeaderRows, len(t.Rows))
	}
	if len(t.Rows) == 0 {
		return nil, nil
	}

	if t.Floating {
		return f.layoutMonolithic(cursor, blk, columnWidth), nil
	}

	f.preflight(cursor, t)

	var fragments []*model.Fragment
	fromRow := 0
	var pending *pendingPartial
	first := true

	// Every attempt either places lines/rows or advances a column with a
	// fresh-column retry next, so the loop is bounded by content size.
	maxAttempts := 2*(len(t.Rows)+totalLineCount(t)) + 16

	for attempt := 0; ; attempt++ {
		if attempt > maxAttempts {
			return fragments, fmt.Errorf("tables: block %q fragmentation exceeded %d attempts", blk.ID, maxAttempts)
		}

		state := cursor.EnsurePage()

		if pending != nil {
			frag, done := f.continuePartial(cursor, state, blk, columnWidth, pending, first)
			if frag == nil {
				// No progress off a partially used column.
				cursor.AdvanceColumn(state)
				continue
			}
			fragments = append(fragments, frag)
			if done {
				fromRow = pending.row + 1
				pending = nil
			} else {
				pending.fromLines = frag.Table.Partial.ToLines
			}
			first = false
			continue
		}

		if fromRow >= len(t.Rows) {
			break
		}

		plan := f.planFragment(state, t, fromRow, first)
		if plan.advanceOnly {
			cursor.AdvanceColumn(state)
			continue
		}

		frag := f.emit(cursor, state, blk, columnWidth, plan, fromRow, first)
		fragments = append(fragments, frag)
		first = false

		if plan.partial != nil {
			if plan.partial.IsLastPart {
				// The trailing part already exhausted the row.
				fromRow = plan.toRow
				continue
			}
			pending = &pendingPartial{row: plan.toRow - 1, fromLines: plan.partial.ToLines}
			// The same partial row continues from the current
			// cursor position; a zero-progress attempt there
			// advances the column.
			continue
		}
		fromRow = plan.toRow
		if fromRow < len(t.Rows) {
			cursor.AdvanceColumn(state)
		}
	}

	markContinuations(fragments)
	return fragments, nil
}

// preflight decides whether the table may begin on a page that already has
// other content. An effectively unsplittable first row must fit whole in
// the remaining space; a splittable one only needs room for one line of its
// first cell. Otherwise the cursor advances before the table starts.
func (f *Fragmenter) preflight(cursor model.Cursor, t *model.TableMeasure) {
	state := cursor.EnsurePage()
	if len(state.Fragments) == 0 && state.AtColumnTop() {
		return
	}

	avail := state.Remaining()
	spacing := t.RowSpacing()
	lead := 0.0
	if spacing > 0 {
		lead = spacing
	}

	row := t.Rows[0]
	if f.effectivelyUnsplittable(row, state.ColumnHeight()) {
		if lead+model.ClampNonNegative(row.Height)+spacing > avail {
			cursor.AdvanceColumn(state)
		}
		return
	}
	if len(row.Cells) == 0 || len(row.Cells[0].LineHeights) == 0 {
		return
	}
	cell := row.Cells[0]
	need := lead + cell.PaddingTop + cell.PaddingBottom + model.ClampNonNegative(cell.LineHeights[0])
	if need > avail {
		cursor.AdvanceColumn(state)
	}
}

// planFragment fits rows into the current column starting at fromRow.
func (f *Fragmenter) planFragment(state *model.PageState, t *model.TableMeasure, fromRow int, first bool) fragmentPlan {
	avail := state.Remaining()
	spacing := t.RowSpacing()

	plan := fragmentPlan{toRow: fromRow}
	if first && spacing > 0 {
		// Separate borders add one spacing strip above the first row
		// of the table's first fragment.
		plan.height = spacing
	}

	// Headers repeat on continuations when they fit; they never force an
	// otherwise avoidable split.
	if !first && t.HeaderRows > 0 {
		hh := t.HeaderHeight()
		if plan.height+hh <= avail {
			plan.repeatHeaders = t.HeaderRows
			plan.height += hh
		}
	}

	r := fromRow
	for r < len(t.Rows) {
		rowH := model.ClampNonNegative(t.Rows[r].Height) + spacing
		if plan.height+rowH > avail {
			break
		}
		plan.height += rowH
		r++
	}
	plan.toRow = r
	if r >= len(t.Rows) {
		return plan
	}

	// Row r does not fit the remaining space.
	row := t.Rows[r]
	columnHeight := state.ColumnHeight()
	remaining := avail - plan.height

	switch {
	case model.ClampNonNegative(row.Height) > columnHeight:
		// Taller than a full page: force a mid-row split regardless
		// of the row's split flag.
		if part, ok := f.computePartialRow(row, nil, remaining-spacing); ok {
			part.Row = r
			plan.partial = part
			plan.height += part.Height + spacing
			plan.toRow = r + 1
			return plan
		}
		if plan.toRow == fromRow && state.AtColumnTop() {
			// Not even one line fits a full column. Force one line
			// per cell so the row still exhausts page by page.
			part := forceLineProgress(row, nil)
			part.Row = r
			plan.partial = part
			plan.height += part.Height + spacing
			plan.toRow = r + 1
			return plan
		}
	case f.effectivelyUnsplittable(row, columnHeight):
		// Fragment ends before the row.
	case remaining >= f.config.MinPartialRowHeight:
		if part, ok := f.computePartialRow(row, nil, remaining-spacing); ok {
			part.Row = r
			plan.partial = part
			plan.height += part.Height + spacing
			plan.toRow = r + 1
			return plan
		}
	}

	if plan.toRow == fromRow {
		// Nothing fit at all: advance to a new column/page.
		plan.advanceOnly = true
	}
	return plan
}

// continuePartial retries a pending partial row at the current cursor
// position. It returns the emitted fragment (nil when no line progress was
// possible) and whether the row is now exhausted.
func (f *Fragmenter) continuePartial(cursor model.Cursor, state *model.PageState, blk *model.Block, columnWidth float64, pending *pendingPartial, first bool) (*model.Fragment, bool) {
	t := blk.Table
	row := t.Rows[pending.row]
	avail := state.Remaining()
	spacing := t.RowSpacing()

	repeatHeaders := 0
	headerHeight := 0.0
	if !first && t.HeaderRows > 0 {
		hh := t.HeaderHeight()
		if hh <= avail {
			repeatHeaders = t.HeaderRows
			headerHeight = hh
		}
	}

	part, ok := f.computePartialRow(row, pending.fromLines, avail-headerHeight-spacing)
	if !ok {
		if !state.AtColumnTop() {
			return nil, false
		}
		// A full column made no progress: a single line taller than
		// the page. Force one line per unfinished cell so the row
		// still exhausts, one fragment per page.
		part = forceLineProgress(row, pending.fromLines)
	}
	part.Row = pending.row

	frag := &model.Fragment{
		BlockID:     blk.ID,
		PageIndex:   state.PageIndex,
		ColumnIndex: state.ColumnIndex,
		X:           cursor.ColumnX(state.ColumnIndex) + t.EffectiveIndent(),
		Y:           state.CursorY,
		Width:       model.ClampNonNegative(columnWidth - t.EffectiveIndent()),
		Height:      headerHeight + part.Height + spacing,
		Position:    blk.Position,
		Table: &model.TableFragment{
			FromRow:           pending.row,
			ToRow:             pending.row + 1,
			Partial:           part,
			RepeatHeaderCount: repeatHeaders,
			ContinuesFromPrev: true,
		},
	}
	state.Append(frag)
	state.CursorY += frag.Height
	return frag, part.IsLastPart
}

// emit builds and appends the fragment described by plan.
func (f *Fragmenter) emit(cursor model.Cursor, state *model.PageState, blk *model.Block, columnWidth float64, plan fragmentPlan, fromRow int, first bool) *model.Fragment {
	t := blk.Table
	frag := &model.Fragment{
		BlockID:     blk.ID,
		PageIndex:   state.PageIndex,
		ColumnIndex: state.ColumnIndex,
		X:           cursor.ColumnX(state.ColumnIndex) + t.EffectiveIndent(),
		Y:           state.CursorY,
		Width:       model.ClampNonNegative(columnWidth - t.EffectiveIndent()),
		Height:      plan.height,
		Position:    blk.Position,
		Table: &model.TableFragment{
			FromRow:           fromRow,
			ToRow:             plan.toRow,
			Partial:           plan.partial,
			RepeatHeaderCount: plan.repeatHeaders,
			ContinuesFromPrev: !first,
			ContinuesOnNext:   plan.partial != nil && !plan.partial.IsLastPart,
		},
	}
	state.Append(frag)
	state.CursorY += frag.Height
	return frag
}

// layoutMonolithic places a floating table as a single fragment. It
// advances to a new column only when the table does not fit the remaining
// space of a non-empty column; it is never row-split.
func (f *Fragmenter) layoutMonolithic(cursor model.Cursor, blk *model.Block, columnWidth float64) []*model.Fragment {
	t := blk.Table
	state := cursor.EnsurePage()
	height := t.TotalHeight()

	if height > state.Remaining() && (len(state.Fragments) > 0 || !state.AtColumnTop()) {
		state = cursor.AdvanceColumn(state)
	}

	frag := &model.Fragment{
		BlockID:     blk.ID,
		PageIndex:   state.PageIndex,
		ColumnIndex: state.ColumnIndex,
		X:           cursor.ColumnX(state.ColumnIndex) + t.EffectiveIndent(),
		Y:           state.CursorY,
		Width:       model.ClampNonNegative(columnWidth - t.EffectiveIndent()),
		Height:      height,
		Position:    blk.Position,
		Table: &model.TableFragment{
			FromRow: 0,
			ToRow:   len(t.Rows),
		},
	}
	state.Append(frag)
	state.CursorY += height
	return []*model.Fragment{frag}
}

// effectivelyUnsplittable reports whether the row may never be divided: it
// carries the cant-split flag, or its explicit height exceeds its natural
// content height while the row still fits a full page.
func (f *Fragmenter) effectivelyUnsplittable(row model.RowMeasure, columnHeight float64) bool {
	if row.CantSplit {
		return true
	}
	if row.ExplicitHeight > 0 && row.ExplicitHeight > naturalRowHeight(row) &&
		model.ClampNonNegative(row.Height) <= columnHeight {
		return true
	}
	if len(row.Cells) == 0 {
		return true
	}
	return false
}

// naturalRowHeight is the content-driven height of a row: the tallest
// cell's lines plus its own padding.
func naturalRowHeight(row model.RowMeasure) float64 {
	max := 0.0
	for _, cell := range row.Cells {
		h := cell.PaddingTop + cell.PaddingBottom + cell.ContentHeight(0, cell.LineCount())
		if h > max {
			max = h
		}
	}
	return max
}

func totalLineCount(t *model.TableMeasure) int {
	n := 0
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			n += cell.LineCount()
		}
	}
	return n
}

// markContinuations normalizes the continuation flags from the fragments'
// final order: interior fragments continue both ways, the ends never do.
func markContinuations(fragments []*model.Fragment) {
	for i, frag := range fragments {
		frag.Table.ContinuesFromPrev = i > 0
		frag.Table.ContinuesOnNext = i < len(fragments)-1
	}
}

func blockID(blk *model.Block) string {
	if blk == nil {
		return ""
	}
	return blk.ID
}
