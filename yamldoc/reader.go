package yamldoc

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pageflow/model"
	"github.com/tsawler/pageflow/pages"
)

// Document is a parsed layout document: the default geometry, measured
// header/footer content heights, and the ordered block/marker stream.
type Document struct {
	Title    string
	Geometry model.SectionGeometry

	HeaderContentHeight float64
	FooterContentHeight float64

	Items []pages.Item
}

// Open reads a layout document from a YAML file.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses a layout document from an io.Reader. Structural
// problems (duplicate block IDs, header rows beyond the measured rows,
// empty stream entries) are collected and reported together; malformed
// numeric fields are clamped instead.
func OpenReader(r io.Reader) (*Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	doc := &Document{
		Title:               raw.Title,
		Geometry:            convertGeometry(raw.Geometry),
		HeaderContentHeight: model.ClampNonNegative(raw.HeaderContentHeight),
		FooterContentHeight: model.ClampNonNegative(raw.FooterContentHeight),
	}

	var errs error
	seen := make(map[string]bool)
	blockIndex := 0

	for i, item := range raw.Stream {
		switch {
		case item.Section != nil:
			marker, err := convertSection(item.Section)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("stream[%d]: %w", i, err))
				continue
			}
			doc.Items = append(doc.Items, pages.MarkerItem(marker))
		case item.Paragraph != nil:
			blockIndex++
			blk := convertParagraph(item.Paragraph, blockIndex)
			if err := checkID(seen, blk.ID, i); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			doc.Items = append(doc.Items, pages.BlockItem(blk))
		case item.Table != nil:
			blockIndex++
			blk, err := convertTable(item.Table, blockIndex)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("stream[%d]: %w", i, err))
				continue
			}
			if err := checkID(seen, blk.ID, i); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			doc.Items = append(doc.Items, pages.BlockItem(blk))
		case item.Image != nil:
			blockIndex++
			blk := convertImage(item.Image, blockIndex)
			if err := checkID(seen, blk.ID, i); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			doc.Items = append(doc.Items, pages.BlockItem(blk))
		default:
			errs = multierr.Append(errs, fmt.Errorf("stream[%d]: entry carries no section, paragraph, table, or image", i))
		}
	}

	if errs != nil {
		return nil, errs
	}
	return doc, nil
}

func checkID(seen map[string]bool, id string, index int) error {
	if seen[id] {
		return fmt.Errorf("stream[%d]: duplicate block id %q", index, id)
	}
	seen[id] = true
	return nil
}

func convertGeometry(raw *rawGeometry) model.SectionGeometry {
	geom := model.SectionGeometry{
		Margins:  model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		PageSize: model.PageSize{Width: 612, Height: 792},
		Columns:  model.SingleColumn(),
	}
	if raw == nil {
		return geom
	}
	if raw.PageSize != nil {
		geom.PageSize.Width = model.SanitizeLength(raw.PageSize.Width, geom.PageSize.Width)
		geom.PageSize.Height = model.SanitizeLength(raw.PageSize.Height, geom.PageSize.Height)
	}
	if raw.Margins != nil {
		geom.Margins = convertMargins(raw.Margins)
	}
	if raw.Columns != nil {
		geom.Columns = convertColumns(raw.Columns)
	}
	geom.HeaderDistance = model.ClampNonNegative(raw.HeaderDistance)
	geom.FooterDistance = model.ClampNonNegative(raw.FooterDistance)
	if o, ok := parseOrientation(raw.Orientation); ok {
		geom.Orientation = o
	}
	return geom
}

func convertMargins(raw *rawMargins) model.Margins {
	return model.Margins{
		Top:    model.ClampNonNegative(raw.Top),
		Bottom: model.ClampNonNegative(raw.Bottom),
		Left:   model.ClampNonNegative(raw.Left),
		Right:  model.ClampNonNegative(raw.Right),
	}
}

func convertColumns(raw *rawColumns) model.ColumnSpec {
	c := model.ColumnSpec{Count: raw.Count, Gap: model.ClampNonNegative(raw.Gap)}
	if c.Count < 1 {
		c.Count = 1
	}
	return c
}

func parseOrientation(s string) (model.Orientation, bool) {
	switch s {
	case "", "portrait":
		return model.OrientationPortrait, s != ""
	case "landscape":
		return model.OrientationLandscape, true
	default:
		return model.OrientationPortrait, false
	}
}

func parseBreakType(s string) (model.BreakType, error) {
	switch s {
	case "", "continuous":
		return model.BreakContinuous, nil
	case "next_page", "nextPage":
		return model.BreakNextPage, nil
	case "even_page", "evenPage":
		return model.BreakEvenPage, nil
	case "odd_page", "oddPage":
		return model.BreakOddPage, nil
	default:
		return model.BreakContinuous, fmt.Errorf("unknown section break type %q", s)
	}
}

func convertSection(raw *rawSection) (model.SectionMarker, error) {
	breakType, err := parseBreakType(raw.Type)
	if err != nil {
		return model.SectionMarker{}, err
	}

	marker := model.SectionMarker{
		Type:                breakType,
		FirstSection:        raw.First,
		RequirePageBoundary: raw.RequirePageBoundary,
		BalanceColumns:      raw.Balance,
		Position:            model.PositionRange{Start: raw.Position.Start, End: raw.Position.End},
	}
	if raw.PageSize != nil {
		size := model.PageSize{
			Width:  model.ClampNonNegative(raw.PageSize.Width),
			Height: model.ClampNonNegative(raw.PageSize.Height),
		}
		marker.PageSize = &size
	}
	if raw.Margins != nil {
		m := convertMargins(raw.Margins)
		marker.Margins = &m
	}
	if raw.Columns != nil {
		c := convertColumns(raw.Columns)
		marker.Columns = &c
	}
	if raw.Orientation != nil {
		o, ok := parseOrientation(*raw.Orientation)
		if !ok {
			return model.SectionMarker{}, fmt.Errorf("unknown orientation %q", *raw.Orientation)
		}
		marker.Orientation = &o
	}
	if raw.HeaderDistance != nil {
		h := model.ClampNonNegative(*raw.HeaderDistance)
		marker.HeaderDistance = &h
	}
	if raw.FooterDistance != nil {
		f := model.ClampNonNegative(*raw.FooterDistance)
		marker.FooterDistance = &f
	}
	return marker, nil
}

func convertParagraph(raw *rawParagraph, index int) *model.Block {
	lines := make([]float64, len(raw.Lines))
	total := 0.0
	for i, lh := range raw.Lines {
		lines[i] = model.ClampNonNegative(lh)
		total += lines[i]
	}
	canBreak := true
	if raw.CanBreak != nil {
		canBreak = *raw.CanBreak
	}
	return &model.Block{
		ID:          defaultID(raw.ID, index),
		Type:        model.BlockTypeParagraph,
		Height:      total,
		LineHeights: lines,
		Constraints: model.BreakConstraints{
			CanBreak:     canBreak,
			KeepWithNext: raw.KeepWithNext,
			KeepTogether: raw.KeepTogether,
			OrphanLines:  raw.Orphans,
			WidowLines:   raw.Widows,
		},
		Position: model.PositionRange{Start: raw.Position.Start, End: raw.Position.End},
	}
}

func convertTable(raw *rawTable, index int) (*model.Block, error) {
	if raw.HeaderRows < 0 || raw.HeaderRows > len(raw.Rows) {
		return nil, fmt.Errorf("table %q: header_rows %d outside measured rows %d", raw.ID, raw.HeaderRows, len(raw.Rows))
	}

	t := &model.TableMeasure{
		HeaderRows:      raw.HeaderRows,
		SeparateBorders: raw.SeparateBorders,
		CellSpacing:     model.ClampNonNegative(raw.CellSpacing),
		Floating:        raw.Floating,
		Indent:          model.ClampNonNegative(raw.Indent),
	}
	for i, row := range raw.Rows {
		r := model.RowMeasure{
			Height:         model.ClampNonNegative(row.Height),
			ExplicitHeight: model.ClampNonNegative(row.ExplicitHeight),
			CantSplit:      row.CantSplit,
		}
		for _, cell := range row.Cells {
			c := model.CellMeasure{
				PaddingTop:    model.ClampNonNegative(cell.PaddingTop),
				PaddingBottom: model.ClampNonNegative(cell.PaddingBottom),
			}
			for _, lh := range cell.Lines {
				c.LineHeights = append(c.LineHeights, model.ClampNonNegative(lh))
			}
			r.Cells = append(r.Cells, c)
		}
		if r.Height == 0 {
			// Derive the row height from its tallest cell when the
			// document omits it.
			for _, c := range r.Cells {
				if h := c.PaddingTop + c.PaddingBottom + c.ContentHeight(0, c.LineCount()); h > r.Height {
					r.Height = h
				}
			}
		}
		if len(r.Cells) == 0 {
			return nil, fmt.Errorf("table %q: row %d has no cells", raw.ID, i)
		}
		t.Rows = append(t.Rows, r)
	}

	return &model.Block{
		ID:       defaultID(raw.ID, index),
		Type:     model.BlockTypeTable,
		Height:   t.TotalHeight(),
		Table:    t,
		Position: model.PositionRange{Start: raw.Position.Start, End: raw.Position.End},
	}, nil
}

func convertImage(raw *rawImage, index int) *model.Block {
	return &model.Block{
		ID:     defaultID(raw.ID, index),
		Type:   model.BlockTypeImage,
		Height: model.ClampNonNegative(raw.Height),
		Image: &model.ImageMeasure{
			Width:  model.ClampNonNegative(raw.Width),
			Height: model.ClampNonNegative(raw.Height),
		},
		Position: model.PositionRange{Start: raw.Position.Start, End: raw.Position.End},
	}
}

func defaultID(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("block-%d", index)
}
