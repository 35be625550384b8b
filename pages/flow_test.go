package pages

import (
	"testing"

	"github.com/tsawler/pageflow/model"
)

func para(id string, lineHeight float64, count int) *model.Block {
	lines := make([]float64, count)
	for i := range lines {
		lines[i] = lineHeight
	}
	return &model.Block{
		ID:          id,
		Type:        model.BlockTypeParagraph,
		LineHeights: lines,
		Constraints: model.BreakConstraints{CanBreak: true},
	}
}

func opaque(id string, height float64) *model.Block {
	return &model.Block{ID: id, Type: model.BlockTypeParagraph, Height: height}
}

// TestFlowSplitsParagraphAcrossPages flows two long paragraphs through a
// single-column document, splitting the second at a line boundary.
func TestFlowSplitsParagraphAcrossPages(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		BlockItem(para("p1", 40, 10)),
		BlockItem(para("p2", 40, 10)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(result.Pages))
	}
	frags := result.AllFragments()
	if len(frags) != 3 {
		t.Fatalf("got %d fragments, want 3", len(frags))
	}

	// 648 usable points hold p1 (400) plus six lines of p2 (240).
	split := frags[1]
	if split.BlockID != "p2" || split.FromLine != 0 || split.ToLine != 6 {
		t.Errorf("split fragment = %s lines [%d,%d), want p2 [0,6)", split.BlockID, split.FromLine, split.ToLine)
	}
	rest := frags[2]
	if rest.PageIndex != 1 || rest.FromLine != 6 || rest.ToLine != 10 {
		t.Errorf("carried fragment = page %d lines [%d,%d), want page 1 [6,10)", rest.PageIndex, rest.FromLine, rest.ToLine)
	}
	if rest.Y != 72 {
		t.Errorf("carried fragment Y = %g, want top margin 72", rest.Y)
	}
}

// TestFlowPendingColumnsApplyOnOverflow verifies that geometry scheduled by
// a continuous break takes effect when content wraps to the next page
// naturally, with no forced page break in between.
func TestFlowPendingColumnsApplyOnOverflow(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		MarkerItem(model.SectionMarker{
			Type:    model.BreakContinuous,
			Columns: &model.ColumnSpec{Count: 2, Gap: 18},
		}),
		BlockItem(opaque("a", 400)),
		BlockItem(opaque("b", 400)),
		BlockItem(opaque("c", 400)),
		BlockItem(opaque("d", 400)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(result.Pages))
	}
	// The wrap to page 2 is a page boundary: the scheduled two-column
	// configuration governs the new page.
	if got := result.Pages[1].Columns; got != (model.ColumnSpec{Count: 2, Gap: 18}) {
		t.Errorf("second page columns = %+v, want {2 18}", got)
	}

	sawSecond := false
	for _, frag := range result.Pages[1].Fragments() {
		if frag.ColumnIndex != 1 {
			continue
		}
		sawSecond = true
		// 468pt content width, two columns, 18pt gap: column 1 starts
		// at 72 + 225 + 18.
		if frag.X != 315 {
			t.Errorf("fragment %s X = %g, want 315", frag.BlockID, frag.X)
		}
	}
	if !sawSecond {
		t.Error("no fragment reached the second column of the overflow page")
	}
}

// TestFlowNextPageTwoColumnSection starts a two-column section on a new
// page and balances it at the end of the document.
func TestFlowNextPageTwoColumnSection(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		MarkerItem(model.SectionMarker{Type: model.BreakContinuous, FirstSection: true}),
		BlockItem(opaque("intro", 100)),
		MarkerItem(model.SectionMarker{
			Type:    model.BreakNextPage,
			Columns: &model.ColumnSpec{Count: 2, Gap: 18},
		}),
		BlockItem(opaque("a", 100)),
		BlockItem(opaque("b", 100)),
		BlockItem(opaque("c", 100)),
		BlockItem(opaque("d", 100)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(result.Pages))
	}
	if !result.Pages[1].Columns.IsMultiColumn() {
		t.Errorf("second page columns = %+v, want two", result.Pages[1].Columns)
	}

	// The final section balances by default; the four stacked blocks end
	// up spread over both columns.
	byColumn := map[int]int{}
	for _, frag := range result.Pages[1].Fragments() {
		byColumn[frag.ColumnIndex]++
	}
	if byColumn[0] == 0 || byColumn[1] == 0 {
		t.Errorf("fragments per column = %v, want both columns used", byColumn)
	}

	// Moved fragments restack from the top margin in their column.
	for _, frag := range result.Pages[1].Fragments() {
		if frag.ColumnIndex == 1 && frag.Y < 72 {
			t.Errorf("fragment %s Y = %g above top margin", frag.BlockID, frag.Y)
		}
	}
}

// TestFlowContinuousColumnChangeMidPage verifies a continuous break with a
// column change re-flows the rest of the page without a page break.
func TestFlowContinuousColumnChangeMidPage(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		MarkerItem(model.SectionMarker{Type: model.BreakContinuous, FirstSection: true}),
		BlockItem(opaque("lead", 400)),
		MarkerItem(model.SectionMarker{
			Type:    model.BreakContinuous,
			Columns: &model.ColumnSpec{Count: 2, Gap: 18},
		}),
		BlockItem(opaque("a", 50)),
		BlockItem(opaque("b", 50)),
		BlockItem(opaque("c", 50)),
		BlockItem(opaque("d", 50)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(result.Pages))
	}

	frags := result.Pages[0].Fragments()
	if frags[0].BlockID != "lead" || frags[0].Y != 72 {
		t.Fatalf("lead fragment = %+v", frags[0])
	}

	// The region starts below the lead block at Y 472; balanced fragments
	// never restack above it.
	sawSecondColumn := false
	for _, frag := range frags[1:] {
		if frag.Y < 472 {
			t.Errorf("region fragment %s Y = %g, want >= 472", frag.BlockID, frag.Y)
		}
		if frag.ColumnIndex == 1 {
			sawSecondColumn = true
		}
	}
	if !sawSecondColumn {
		t.Error("mid-page region never used its second column")
	}
}

// TestFlowOddPageParity verifies a blank page is inserted when an odd-page
// section would otherwise start on an even page.
func TestFlowOddPageParity(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		BlockItem(opaque("p1", 100)),
		MarkerItem(model.SectionMarker{Type: model.BreakOddPage}),
		BlockItem(opaque("p2", 100)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Pages) != 3 {
		t.Fatalf("got %d pages, want 3 (content, blank, content)", len(result.Pages))
	}
	if !result.Pages[1].Blank {
		t.Error("page 2 not blank")
	}
	if got := len(result.Pages[2].Fragments()); got != 1 {
		t.Errorf("page 3 has %d fragments, want 1", got)
	}
}

// TestFlowKeepWithNext verifies a keep-with-next block moves to a fresh
// column together with its follower.
func TestFlowKeepWithNext(t *testing.T) {
	heading := opaque("heading", 100)
	heading.Constraints.KeepWithNext = true

	flow := NewFlow()
	result, err := flow.Layout([]Item{
		BlockItem(opaque("filler", 500)),
		BlockItem(heading),
		BlockItem(opaque("body", 200)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	frags := result.AllFragments()
	var headingFrag, bodyFrag *model.Fragment
	for _, frag := range frags {
		switch frag.BlockID {
		case "heading":
			headingFrag = frag
		case "body":
			bodyFrag = frag
		}
	}
	if headingFrag == nil || bodyFrag == nil {
		t.Fatal("missing fragments")
	}
	if headingFrag.PageIndex != bodyFrag.PageIndex {
		t.Errorf("heading on page %d, body on page %d", headingFrag.PageIndex, bodyFrag.PageIndex)
	}
	if headingFrag.PageIndex != 1 {
		t.Errorf("heading stayed on page %d despite not fitting with body", headingFrag.PageIndex)
	}
}

// TestFlowUnsplittableOverflowWarns verifies an unsplittable block taller
// than a column is placed with a warning instead of looping.
func TestFlowUnsplittableOverflowWarns(t *testing.T) {
	flow := NewFlow()
	result, err := flow.Layout([]Item{BlockItem(opaque("giant", 800))})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(result.Warnings), result.Warnings)
	}
	frags := result.AllFragments()
	if len(frags) != 1 || frags[0].Height != 800 {
		t.Errorf("overflow fragment = %+v", frags)
	}
}

// TestFlowExplicitBalanceFlag verifies an explicit balance=false leaves a
// multi-column section unbalanced.
func TestFlowExplicitBalanceFlag(t *testing.T) {
	no := false
	flow := NewFlow()
	result, err := flow.Layout([]Item{
		MarkerItem(model.SectionMarker{
			Type:           model.BreakContinuous,
			FirstSection:   true,
			Columns:        &model.ColumnSpec{Count: 2, Gap: 18},
			BalanceColumns: &no,
		}),
		BlockItem(opaque("a", 100)),
		BlockItem(opaque("b", 100)),
		BlockItem(opaque("c", 100)),
		BlockItem(opaque("d", 100)),
	})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	for _, frag := range result.AllFragments() {
		if frag.ColumnIndex != 0 {
			t.Errorf("fragment %s moved to column %d despite balance=false", frag.BlockID, frag.ColumnIndex)
		}
	}
}

// TestFlowImageWidthCapped verifies an image narrower than the column keeps
// its own width.
func TestFlowImageWidthCapped(t *testing.T) {
	img := &model.Block{
		ID:     "img",
		Type:   model.BlockTypeImage,
		Height: 120,
		Image:  &model.ImageMeasure{Width: 200, Height: 120},
	}
	flow := NewFlow()
	result, err := flow.Layout([]Item{BlockItem(img)})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	frag := result.AllFragments()[0]
	if frag.Width != 200 {
		t.Errorf("image fragment width = %g, want intrinsic 200", frag.Width)
	}
}

// TestFlowTableBlock routes table blocks through the fragmenter.
func TestFlowTableBlock(t *testing.T) {
	tbl := &model.Block{
		ID:   "t",
		Type: model.BlockTypeTable,
		Table: &model.TableMeasure{
			Rows: []model.RowMeasure{
				{Height: 20, Cells: []model.CellMeasure{{LineHeights: []float64{20}}}},
				{Height: 20, Cells: []model.CellMeasure{{LineHeights: []float64{20}}}},
			},
		},
	}
	flow := NewFlow()
	result, err := flow.Layout([]Item{BlockItem(tbl)})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	frags := result.AllFragments()
	if len(frags) != 1 || frags[0].Table == nil {
		t.Fatalf("table fragments = %+v", frags)
	}
	if frags[0].Table.ToRow != 2 {
		t.Errorf("table fragment ToRow = %d, want 2", frags[0].Table.ToRow)
	}
}
