package model

// TableMeasure holds the upstream measurements of one table block.
type TableMeasure struct {
	// Rows are the measured rows in layout order.
	Rows []RowMeasure `json:"rows" yaml:"rows"`

	// HeaderRows is the number of leading rows repeated on continuation
	// fragments.
	HeaderRows int `json:"header_rows" yaml:"header_rows"`

	// SeparateBorders indicates the "separate" cell border model, in
	// which CellSpacing is added between rows.
	SeparateBorders bool `json:"separate_borders" yaml:"separate_borders"`

	// CellSpacing is the inter-cell spacing in points. Only meaningful
	// with SeparateBorders.
	CellSpacing float64 `json:"cell_spacing" yaml:"cell_spacing"`

	// Floating marks an anchored table, which is placed monolithically
	// and never row-split.
	Floating bool `json:"floating" yaml:"floating"`

	// Indent is the table's left indent in points. Invalid values yield
	// an effective offset of zero.
	Indent float64 `json:"indent" yaml:"indent"`
}

// RowMeasure holds the measurements of one table row.
type RowMeasure struct {
	// Height is the measured row height in points.
	Height float64 `json:"height" yaml:"height"`

	// ExplicitHeight is a fixed row height from the document, 0 when the
	// row height is content-driven. A row whose explicit height exceeds
	// its natural content height is treated as unsplittable while it
	// still fits a full page.
	ExplicitHeight float64 `json:"explicit_height,omitempty" yaml:"explicit_height"`

	// CantSplit prevents the row from being divided across a page or
	// column boundary. A row taller than a full page is force-split
	// regardless.
	CantSplit bool `json:"cant_split,omitempty" yaml:"cant_split"`

	// Cells are the row's cell measurements, one per grid column the row
	// occupies.
	Cells []CellMeasure `json:"cells" yaml:"cells"`
}

// CellMeasure holds the per-line measurements of one table cell.
type CellMeasure struct {
	// LineHeights are the cell's measured line heights in layout order.
	LineHeights []float64 `json:"line_heights" yaml:"lines"`

	// PaddingTop and PaddingBottom are the cell's own vertical padding,
	// subtracted from the cell's available height during a partial-row
	// cut.
	PaddingTop    float64 `json:"padding_top" yaml:"padding_top"`
	PaddingBottom float64 `json:"padding_bottom" yaml:"padding_bottom"`
}

// LineCount returns the number of measured lines in the cell.
func (c CellMeasure) LineCount() int {
	return len(c.LineHeights)
}

// ContentHeight returns the summed height of lines [from, to) of the cell.
func (c CellMeasure) ContentHeight(from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(c.LineHeights) {
		to = len(c.LineHeights)
	}
	sum := 0.0
	for i := from; i < to; i++ {
		sum += ClampNonNegative(c.LineHeights[i])
	}
	return sum
}

// RowCount returns the number of measured rows.
func (t *TableMeasure) RowCount() int {
	return len(t.Rows)
}

// RowSpacing returns the spacing added per row under the separate border
// model, 0 otherwise.
func (t *TableMeasure) RowSpacing() float64 {
	if !t.SeparateBorders {
		return 0
	}
	return ClampNonNegative(t.CellSpacing)
}

// EffectiveIndent returns the table's left indent clamped to a usable value.
func (t *TableMeasure) EffectiveIndent() float64 {
	return ClampNonNegative(t.Indent)
}

// TotalHeight returns the summed height of all rows including per-row
// spacing and, with separate borders, the one leading spacing strip.
func (t *TableMeasure) TotalHeight() float64 {
	spacing := t.RowSpacing()
	sum := 0.0
	for _, row := range t.Rows {
		sum += ClampNonNegative(row.Height) + spacing
	}
	if spacing > 0 && len(t.Rows) > 0 {
		sum += spacing
	}
	return sum
}

// HeaderHeight returns the combined height of the repeated header rows
// including per-row spacing.
func (t *TableMeasure) HeaderHeight() float64 {
	spacing := t.RowSpacing()
	n := t.HeaderRows
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += ClampNonNegative(t.Rows[i].Height) + spacing
	}
	return sum
}
