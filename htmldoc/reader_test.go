package htmldoc

import (
	"strings"
	"testing"

	"github.com/tsawler/pageflow/model"
)

// TestOpenReaderBodyGeometry reads document defaults off the body element.
func TestOpenReaderBodyGeometry(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<!DOCTYPE html>
<html>
<head><title>  Annual   Report </title></head>
<body data-page-width="595" data-page-height="842"
      data-margin-top="54" data-margin-bottom="54" data-margin-left="54" data-margin-right="54"
      data-columns="2" data-column-gap="18" data-header-content-height="20">
<p data-lines="14 14">hello</p>
</body>
</html>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}

	if doc.Title != "Annual Report" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Geometry.PageSize != (model.PageSize{Width: 595, Height: 842}) {
		t.Errorf("page size = %+v", doc.Geometry.PageSize)
	}
	if doc.Geometry.Margins.Top != 54 {
		t.Errorf("top margin = %g, want 54", doc.Geometry.Margins.Top)
	}
	if doc.Geometry.Columns != (model.ColumnSpec{Count: 2, Gap: 18}) {
		t.Errorf("columns = %+v", doc.Geometry.Columns)
	}
	if doc.HeaderContentHeight != 20 {
		t.Errorf("header content height = %g", doc.HeaderContentHeight)
	}
}

// TestOpenReaderParagraph parses measured paragraphs with constraints and
// normalized text.
func TestOpenReaderParagraph(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<body>
<p id="p1" data-lines="10, 12, 10" data-orphans="2" data-widows="2"
   data-keep-with-next data-pos-start="100" data-pos-end="180">  Some
  measured   text  </p>
<p data-line-height="14" data-line-count="3">uniform</p>
</body>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(doc.Items))
	}

	p := doc.Items[0].Block
	if p.ID != "p1" {
		t.Errorf("id = %q", p.ID)
	}
	if p.TotalHeight() != 32 {
		t.Errorf("height = %g, want 32", p.TotalHeight())
	}
	if !p.Constraints.KeepWithNext || p.Constraints.OrphanLines != 2 || p.Constraints.WidowLines != 2 {
		t.Errorf("constraints = %+v", p.Constraints)
	}
	if !p.Constraints.CanBreak {
		t.Error("paragraph without data-no-break should be breakable")
	}
	if p.Position != (model.PositionRange{Start: 100, End: 180}) {
		t.Errorf("position = %+v", p.Position)
	}
	if strings.Contains(p.Text, "\n") {
		t.Errorf("text not flattened: %q", p.Text)
	}

	uniform := doc.Items[1].Block
	if uniform.LineCount() != 3 || uniform.TotalHeight() != 42 {
		t.Errorf("uniform paragraph = %d lines, height %g", uniform.LineCount(), uniform.TotalHeight())
	}
}

// TestOpenReaderSectionMarker parses <hr> break markers.
func TestOpenReaderSectionMarker(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<body>
<hr data-break="next_page" data-columns="2" data-column-gap="18" data-balance="false">
<hr data-break="odd_page" data-require-page-boundary>
<hr>
</body>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(doc.Items))
	}

	m := doc.Items[0].Marker
	if m.Type != model.BreakNextPage {
		t.Errorf("break type = %v", m.Type)
	}
	if m.Columns == nil || m.Columns.Count != 2 || m.Columns.Gap != 18 {
		t.Errorf("marker columns = %+v", m.Columns)
	}
	if m.BalanceColumns == nil || *m.BalanceColumns {
		t.Error("balance=false not carried")
	}

	odd := doc.Items[1].Marker
	if odd.Type != model.BreakOddPage || !odd.RequirePageBoundary {
		t.Errorf("second marker = %+v", odd)
	}

	// A bare <hr> is a continuous break with everything reset.
	plain := doc.Items[2].Marker
	if plain.Type != model.BreakContinuous || plain.Columns != nil {
		t.Errorf("bare marker = %+v", plain)
	}
}

// TestOpenReaderUnknownBreakType rejects unrecognized break names.
func TestOpenReaderUnknownBreakType(t *testing.T) {
	_, err := OpenReader(strings.NewReader(`<body><hr data-break="sideways"></body>`))
	if err == nil || !strings.Contains(err.Error(), "unknown section break type") {
		t.Errorf("err = %v", err)
	}
}

// TestOpenReaderTable parses measured tables.
func TestOpenReaderTable(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<body>
<table id="t1" data-header-rows="1" data-cell-spacing="4">
<tr data-height="24"><th data-lines="24">Name</th><th data-lines="24">Qty</th></tr>
<tr data-cant-split><td data-lines="15 15" data-padding-top="2" data-padding-bottom="3">a</td><td data-lines="15">b</td></tr>
</table>
</body>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}

	blk := doc.Items[0].Block
	if blk.Type != model.BlockTypeTable || blk.Table == nil {
		t.Fatalf("block = %+v", blk)
	}
	tbl := blk.Table
	if tbl.HeaderRows != 1 || !tbl.SeparateBorders || tbl.CellSpacing != 4 {
		t.Errorf("table = %+v", tbl)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0].Height != 24 || len(tbl.Rows[0].Cells) != 2 {
		t.Errorf("header row = %+v", tbl.Rows[0])
	}
	if !tbl.Rows[1].CantSplit {
		t.Error("cant-split flag lost")
	}
	// Height derived from the tallest cell: 2 + 30 + 3.
	if tbl.Rows[1].Height != 35 {
		t.Errorf("derived row height = %g, want 35", tbl.Rows[1].Height)
	}
}

// TestOpenReaderTableHeaderRowsValidated rejects header counts beyond the
// measured rows.
func TestOpenReaderTableHeaderRowsValidated(t *testing.T) {
	_, err := OpenReader(strings.NewReader(`<body>
<table data-header-rows="3"><tr data-height="20"><td data-lines="20">x</td></tr></table>
</body>`))
	if err == nil || !strings.Contains(err.Error(), "header rows") {
		t.Errorf("err = %v", err)
	}
}

// TestOpenReaderImage parses measured images; without a source file the
// measured attributes stand alone.
func TestOpenReaderImage(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<body>
<img src="missing.png" data-width="300" data-height="200">
</body>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	blk := doc.Items[0].Block
	if blk.Type != model.BlockTypeImage || blk.Image == nil {
		t.Fatalf("block = %+v", blk)
	}
	if blk.Image.Width != 300 || blk.Height != 200 {
		t.Errorf("image = %+v height %g", blk.Image, blk.Height)
	}
}

// TestAttrHelpers tests the data-attribute parsing helpers.
func TestAttrHelpers(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(`<body>
<p data-lines="10 bogus 20" data-no-break="false">x</p>
</body>`))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	blk := doc.Items[0].Block
	// Malformed line entries clamp to zero rather than failing.
	if blk.LineCount() != 3 || blk.TotalHeight() != 30 {
		t.Errorf("lines = %v", blk.LineHeights)
	}
	// data-no-break="false" keeps the block breakable.
	if !blk.Constraints.CanBreak {
		t.Error(`data-no-break="false" treated as true`)
	}
}
