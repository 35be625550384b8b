package pages

import (
	"testing"

	"github.com/tsawler/pageflow/model"
)

func letterGeometry(columns model.ColumnSpec) model.SectionGeometry {
	return model.SectionGeometry{
		Margins:  model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		PageSize: model.PageSize{Width: 612, Height: 792},
		Columns:  columns,
	}
}

// TestEnsurePage tests lazy first-page creation.
func TestEnsurePage(t *testing.T) {
	b := NewBuilder(letterGeometry(model.SingleColumn()))
	if b.HasPages() {
		t.Error("builder reports pages before any exist")
	}

	state := b.EnsurePage()
	if state.PageIndex != 0 || state.CursorY != 72 || state.ContentBottom != 720 {
		t.Errorf("first page state = %+v", state)
	}
	if !b.HasPages() || len(b.Pages()) != 1 {
		t.Error("first page not recorded")
	}

	// A second call returns the same page.
	if again := b.EnsurePage(); again != state {
		t.Error("EnsurePage created a second page")
	}
}

// TestAdvanceColumn tests column progression and page wrap.
func TestAdvanceColumn(t *testing.T) {
	b := NewBuilder(letterGeometry(model.ColumnSpec{Count: 2, Gap: 18}))
	state := b.EnsurePage()
	state.CursorY = 400

	state = b.AdvanceColumn(state)
	if state.PageIndex != 0 || state.ColumnIndex != 1 {
		t.Errorf("after advance: page %d column %d, want page 0 column 1", state.PageIndex, state.ColumnIndex)
	}
	if state.CursorY != 72 {
		t.Errorf("cursor after column advance = %g, want region top 72", state.CursorY)
	}

	state = b.AdvanceColumn(state)
	if state.PageIndex != 1 || state.ColumnIndex != 0 {
		t.Errorf("after wrap: page %d column %d, want page 1 column 0", state.PageIndex, state.ColumnIndex)
	}
}

// TestColumnX tests column offsets including margins.
func TestColumnX(t *testing.T) {
	b := NewBuilder(letterGeometry(model.ColumnSpec{Count: 2, Gap: 18}))
	b.EnsurePage()

	if got := b.ColumnX(0); got != 72 {
		t.Errorf("ColumnX(0) = %g, want 72", got)
	}
	if got := b.ColumnX(1); got != 315 {
		t.Errorf("ColumnX(1) = %g, want 315", got)
	}
	if got := b.ColumnWidth(); got != 225 {
		t.Errorf("ColumnWidth() = %g, want 225", got)
	}
}

// TestEnsureParity tests blank-page insertion for section-start parity.
func TestEnsureParity(t *testing.T) {
	tests := []struct {
		name       string
		pages      int
		parity     model.Parity
		wantBlanks int
	}{
		{"any parity never inserts", 1, model.ParityAny, 0},
		{"next page already even", 1, model.ParityEven, 0},
		{"next page must skip to odd", 1, model.ParityOdd, 1},
		{"next page already odd", 2, model.ParityOdd, 0},
		{"next page must skip to even", 2, model.ParityEven, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(letterGeometry(model.SingleColumn()))
			for i := 0; i < tt.pages; i++ {
				b.AdvancePage()
			}

			b.EnsureParity(tt.parity)
			state := b.AdvancePage()

			blanks := 0
			for _, p := range b.Pages() {
				if p.Blank {
					blanks++
				}
			}
			if blanks != tt.wantBlanks {
				t.Errorf("blank pages = %d, want %d", blanks, tt.wantBlanks)
			}
			if tt.parity == model.ParityOdd && (state.PageIndex+1)%2 != 1 {
				t.Errorf("section starts on page %d, want odd", state.PageIndex+1)
			}
			if tt.parity == model.ParityEven && (state.PageIndex+1)%2 != 0 {
				t.Errorf("section starts on page %d, want even", state.PageIndex+1)
			}
		})
	}
}

// TestStartRegion tests mid-page column regions.
func TestStartRegion(t *testing.T) {
	b := NewBuilder(letterGeometry(model.SingleColumn()))
	state := b.EnsurePage()
	state.CursorY = 300

	state = b.StartRegion(model.ColumnSpec{Count: 2, Gap: 18})
	if b.RegionTop() != 300 {
		t.Errorf("region top = %g, want 300", b.RegionTop())
	}
	if state.ColumnIndex != 0 || state.ColumnTop != 300 {
		t.Errorf("region state = %+v", state)
	}
	if !b.RegionColumns().IsMultiColumn() {
		t.Error("region columns not applied")
	}

	// Advancing within the region returns to the region top, not the
	// page's top margin.
	state.CursorY = 600
	state = b.AdvanceColumn(state)
	if state.ColumnIndex != 1 || state.CursorY != 300 {
		t.Errorf("advance in region: column %d cursor %g, want column 1 cursor 300", state.ColumnIndex, state.CursorY)
	}
}

// TestSetGeometryAffectsNewPagesOnly verifies geometry changes apply from
// the next created page.
func TestSetGeometryAffectsNewPagesOnly(t *testing.T) {
	b := NewBuilder(letterGeometry(model.SingleColumn()))
	b.EnsurePage()

	landscape := letterGeometry(model.SingleColumn())
	landscape.Orientation = model.OrientationLandscape
	b.SetGeometry(landscape)

	if b.Pages()[0].Size != (model.PageSize{Width: 612, Height: 792}) {
		t.Errorf("existing page resized: %+v", b.Pages()[0].Size)
	}

	b.AdvancePage()
	if got := b.Pages()[1].Size; got != (model.PageSize{Width: 792, Height: 612}) {
		t.Errorf("new page size = %+v, want landscape", got)
	}
}
