package model

// BlockType represents the type of a content block.
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeTable
	BlockTypeImage
)

// String returns a human-readable representation of the block type.
func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "paragraph"
	case BlockTypeTable:
		return "table"
	case BlockTypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// BreakConstraints are the pagination constraints attached to a block.
type BreakConstraints struct {
	// CanBreak allows the block to be split across a column or page
	// boundary at a line boundary.
	CanBreak bool `json:"can_break" yaml:"can_break"`

	// KeepWithNext keeps the block in the same column as the block that
	// follows it when possible.
	KeepWithNext bool `json:"keep_with_next" yaml:"keep_with_next"`

	// KeepTogether prevents the block's lines from being distributed
	// across columns during balancing.
	KeepTogether bool `json:"keep_together" yaml:"keep_together"`

	// OrphanLines is the minimum number of lines that must remain at the
	// bottom of a column when the block is split.
	OrphanLines int `json:"orphan_lines" yaml:"orphan_lines"`

	// WidowLines is the minimum number of lines that must carry over to
	// the top of the next column when the block is split.
	WidowLines int `json:"widow_lines" yaml:"widow_lines"`
}

// PositionRange is an opaque document-position range attached to blocks and
// copied onto their fragments. The layout core neither interprets nor
// validates it; downstream consumers use it for selection mapping.
type PositionRange struct {
	Start int64 `json:"start" yaml:"start"`
	End   int64 `json:"end" yaml:"end"`
}

// Block is one pre-measured content block from the upstream measurement
// pass. Blocks are read-only to the layout core.
type Block struct {
	// ID identifies the block within one layout pass.
	ID string `json:"id" yaml:"id"`

	// Type is the kind of content the block carries.
	Type BlockType `json:"type" yaml:"-"`

	// Height is the total measured height of the block in points.
	Height float64 `json:"height" yaml:"height"`

	// LineHeights holds per-line heights for paragraph blocks, in layout
	// order. Empty for tables and images.
	LineHeights []float64 `json:"line_heights,omitempty" yaml:"lines"`

	// Constraints are the block's pagination constraints.
	Constraints BreakConstraints `json:"constraints" yaml:"constraints"`

	// Table holds row and cell measurements for table blocks.
	Table *TableMeasure `json:"table,omitempty" yaml:"table"`

	// Image holds the measured extent for image blocks.
	Image *ImageMeasure `json:"image,omitempty" yaml:"image"`

	// Text is the block's text content when a reader supplies it. The
	// layout core never reads it; it rides along for debugging and
	// downstream display.
	Text string `json:"text,omitempty" yaml:"text"`

	// Position is the opaque document-position range of the block.
	Position PositionRange `json:"position" yaml:"position"`
}

// ImageMeasure is the measured extent of an image block.
type ImageMeasure struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// LineCount returns the number of measured lines of a paragraph block.
func (b *Block) LineCount() int {
	return len(b.LineHeights)
}

// TotalHeight returns the block's measured height. For paragraph blocks
// with per-line measurements the line heights are authoritative; the
// pre-computed Height field is used otherwise.
func (b *Block) TotalHeight() float64 {
	if len(b.LineHeights) > 0 {
		sum := 0.0
		for _, h := range b.LineHeights {
			sum += ClampNonNegative(h)
		}
		return sum
	}
	if b.Type == BlockTypeTable && b.Table != nil {
		return b.Table.TotalHeight()
	}
	return ClampNonNegative(b.Height)
}

// HeightOfLines returns the summed height of lines [from, to).
// Out-of-range indexes are clamped to the measured line count.
func (b *Block) HeightOfLines(from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(b.LineHeights) {
		to = len(b.LineHeights)
	}
	sum := 0.0
	for i := from; i < to; i++ {
		sum += ClampNonNegative(b.LineHeights[i])
	}
	return sum
}
