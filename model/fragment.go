package model

// Fragment is the positioned, page/column-local slice of a content block
// produced by one layout pass. Fragments are transient outputs: nothing is
// cached across passes.
type Fragment struct {
	// BlockID identifies the source block.
	BlockID string `json:"block_id"`

	// PageIndex is the 0-based page the fragment was placed on.
	PageIndex int `json:"page_index"`

	// ColumnIndex is the 0-based column within the page.
	ColumnIndex int `json:"column_index"`

	// Position and size on the page, in points. Y grows downward from
	// the page top.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// FromLine and ToLine bound the paragraph lines rendered by this
	// fragment, [FromLine, ToLine). For unsplit blocks FromLine is 0 and
	// ToLine is the block's line count (or 0 when lines don't apply).
	FromLine int `json:"from_line,omitempty"`
	ToLine   int `json:"to_line,omitempty"`

	// Table describes the row range for table fragments.
	Table *TableFragment `json:"table,omitempty"`

	// Position is the opaque document-position range copied from the
	// source block.
	Position PositionRange `json:"position"`
}

// TableFragment describes the slice of a table carried by one fragment.
type TableFragment struct {
	// FromRow and ToRow bound the complete body rows rendered by the
	// fragment, [FromRow, ToRow).
	FromRow int `json:"from_row"`
	ToRow   int `json:"to_row"`

	// Partial describes a mid-row split rendered at the end (or start)
	// of the fragment, nil when every row is complete.
	Partial *PartialRow `json:"partial,omitempty"`

	// RepeatHeaderCount is the number of header rows repeated at the top
	// of this fragment. Always 0 on a table's first fragment.
	RepeatHeaderCount int `json:"repeat_header_count,omitempty"`

	// ContinuesFromPrev and ContinuesOnNext link the fragment to its
	// neighbors in the same table.
	ContinuesFromPrev bool `json:"continues_from_prev,omitempty"`
	ContinuesOnNext   bool `json:"continues_on_next,omitempty"`
}

// PartialRow describes one part of a mid-row table split. Cells advance
// through their own lines independently: a taller cell may render more
// lines than a shorter neighbor in the same part.
type PartialRow struct {
	// Row is the index of the split row.
	Row int `json:"row"`

	// FromLines and ToLines hold, per cell, the line range [from, to)
	// rendered by this part.
	FromLines []int `json:"from_lines"`
	ToLines   []int `json:"to_lines"`

	// IsFirstPart marks the first part of the split row.
	IsFirstPart bool `json:"is_first_part"`

	// IsLastPart marks the part that exhausts every cell's lines.
	IsLastPart bool `json:"is_last_part"`

	// Height is the rendered height of this part: the maximum across
	// cells of rendered line heights plus the cell's own padding.
	Height float64 `json:"height"`
}

// BlockBreak records where a block was split to balance columns.
type BlockBreak struct {
	// BreakAfterLine is the number of lines kept in the current column.
	BreakAfterLine int `json:"break_after_line"`

	// HeightBefore is the height of the kept lines, HeightAfter the
	// height carried to the next column.
	HeightBefore float64 `json:"height_before"`
	HeightAfter  float64 `json:"height_after"`
}

// BalancingResult is the outcome of one column-balancing computation.
type BalancingResult struct {
	// Assignments maps block ID to assigned column index.
	Assignments map[string]int `json:"assignments"`

	// Breaks maps block ID to the split applied to it, when balancing
	// had to cut a paragraph at a line boundary.
	Breaks map[string]BlockBreak `json:"breaks,omitempty"`

	// ColumnHeights are the simulated content heights per column.
	ColumnHeights []float64 `json:"column_heights"`

	// Converged reports whether all non-empty columns ended within the
	// configured tolerance of each other. A false value still carries a
	// complete assignment (the best simulation found).
	Converged bool `json:"converged"`
}
