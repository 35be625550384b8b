package section

import (
	"testing"

	"github.com/tsawler/pageflow/model"
)

func baseState() State {
	return NewState(model.SectionGeometry{
		Margins:  model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		PageSize: model.PageSize{Width: 612, Height: 792},
		Columns:  model.SingleColumn(),
	}).WithPages()
}

func baseMargins() model.Margins {
	return model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72}
}

// TestBreakTypeDecisions tests the decision produced per break type.
func TestBreakTypeDecisions(t *testing.T) {
	tests := []struct {
		name       string
		marker     model.SectionMarker
		wantBreak  bool
		wantRegion bool
		wantParity model.Parity
	}{
		{
			name:      "next page forces break",
			marker:    model.SectionMarker{Type: model.BreakNextPage},
			wantBreak: true,
		},
		{
			name:       "even page forces break with parity",
			marker:     model.SectionMarker{Type: model.BreakEvenPage},
			wantBreak:  true,
			wantParity: model.ParityEven,
		},
		{
			name:       "odd page forces break with parity",
			marker:     model.SectionMarker{Type: model.BreakOddPage},
			wantBreak:  true,
			wantParity: model.ParityOdd,
		},
		{
			name:   "continuous without column change stays put",
			marker: model.SectionMarker{Type: model.BreakContinuous},
		},
		{
			name: "continuous with column change re-flows mid-page",
			marker: model.SectionMarker{
				Type:    model.BreakContinuous,
				Columns: &model.ColumnSpec{Count: 2, Gap: 18},
			},
			wantRegion: true,
		},
		{
			name: "require page boundary overrides continuous",
			marker: model.SectionMarker{
				Type:                model.BreakContinuous,
				Columns:             &model.ColumnSpec{Count: 2, Gap: 18},
				RequirePageBoundary: true,
			},
			wantBreak: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, _ := ScheduleSectionBreak(tt.marker, baseState(), baseMargins(), 0, 0)
			if decision.ForcePageBreak != tt.wantBreak {
				t.Errorf("ForcePageBreak = %v, want %v", decision.ForcePageBreak, tt.wantBreak)
			}
			if decision.ForceMidPageRegion != tt.wantRegion {
				t.Errorf("ForceMidPageRegion = %v, want %v", decision.ForceMidPageRegion, tt.wantRegion)
			}
			if decision.RequiredParity != tt.wantParity {
				t.Errorf("RequiredParity = %v, want %v", decision.RequiredParity, tt.wantParity)
			}
		})
	}
}

// TestAbsentColumnsResetToSingle verifies that a marker without a column
// spec always schedules single-column, never inherits the previous section.
func TestAbsentColumnsResetToSingle(t *testing.T) {
	st := baseState()
	st.Active.Columns = model.ColumnSpec{Count: 3, Gap: 12}

	marker := model.SectionMarker{Type: model.BreakContinuous}
	decision, next := ScheduleSectionBreak(marker, st, baseMargins(), 0, 0)

	if !decision.ForceMidPageRegion {
		t.Error("dropping from three columns to one should re-flow mid-page")
	}
	if next.Pending.Columns == nil {
		t.Fatal("column configuration not scheduled")
	}
	if !next.Pending.Columns.Equal(model.SingleColumn()) {
		t.Errorf("scheduled columns = %+v, want single column", *next.Pending.Columns)
	}
}

// TestColumnsAlwaysScheduled verifies a definitive column target exists even
// when nothing changed.
func TestColumnsAlwaysScheduled(t *testing.T) {
	marker := model.SectionMarker{Type: model.BreakNextPage}
	_, next := ScheduleSectionBreak(marker, baseState(), baseMargins(), 0, 0)
	if next.Pending.Columns == nil {
		t.Fatal("pending columns nil after scheduling")
	}
}

// TestFirstSectionBypassesPending verifies the first section writes its
// geometry straight into the active state.
func TestFirstSectionBypassesPending(t *testing.T) {
	st := NewState(model.SectionGeometry{
		Margins:  baseMargins(),
		PageSize: model.PageSize{Width: 612, Height: 792},
		Columns:  model.SingleColumn(),
	})

	marker := model.SectionMarker{
		Type:         model.BreakNextPage,
		FirstSection: true,
		Columns:      &model.ColumnSpec{Count: 2, Gap: 18},
		PageSize:     &model.PageSize{Width: 595, Height: 842},
	}
	_, next := ScheduleSectionBreak(marker, st, baseMargins(), 0, 0)

	if next.Active.Columns != (model.ColumnSpec{Count: 2, Gap: 18}) {
		t.Errorf("active columns = %+v, want two columns", next.Active.Columns)
	}
	if next.Active.PageSize != (model.PageSize{Width: 595, Height: 842}) {
		t.Errorf("active page size = %+v", next.Active.PageSize)
	}
	if !next.Pending.IsEmpty() {
		t.Error("first section left pending geometry behind")
	}
}

// TestFirstSectionAfterPagesDefers verifies the first-section bypass only
// applies while no page exists.
func TestFirstSectionAfterPagesDefers(t *testing.T) {
	marker := model.SectionMarker{
		Type:         model.BreakNextPage,
		FirstSection: true,
		Columns:      &model.ColumnSpec{Count: 2, Gap: 18},
	}
	_, next := ScheduleSectionBreak(marker, baseState(), baseMargins(), 0, 0)

	if next.Active.Columns.IsMultiColumn() {
		t.Error("geometry applied directly despite existing pages")
	}
	if next.Pending.Columns == nil || !next.Pending.Columns.IsMultiColumn() {
		t.Error("column change not deferred to pending")
	}
}

// TestHeaderContentGrowsTopMargin verifies the effective top margin is the
// maximum of the explicit margin and headerDistance + content height.
func TestHeaderContentGrowsTopMargin(t *testing.T) {
	tests := []struct {
		name          string
		headerContent float64
		distance      float64
		wantTop       float64
	}{
		{"no header content keeps margin", 0, 36, 72},
		{"small header stays under margin", 20, 36, 72},
		{"tall header grows margin", 50, 36, 86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.distance
			marker := model.SectionMarker{
				Type:           model.BreakNextPage,
				HeaderDistance: &d,
				Margins:        &model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
			}
			_, next := ScheduleSectionBreak(marker, baseState(), baseMargins(), tt.headerContent, 0)
			if next.Pending.Margins == nil {
				if tt.wantTop != 72 {
					t.Fatal("expected scheduled margins")
				}
				return
			}
			if got := next.Pending.Margins.Top; got != tt.wantTop {
				t.Errorf("scheduled top margin = %g, want %g", got, tt.wantTop)
			}
		})
	}
}

// TestFooterContentGrowsBottomMargin mirrors the header rule for footers.
func TestFooterContentGrowsBottomMargin(t *testing.T) {
	d := 30.0
	marker := model.SectionMarker{
		Type:           model.BreakNextPage,
		FooterDistance: &d,
		Margins:        &model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
	}
	_, next := ScheduleSectionBreak(marker, baseState(), baseMargins(), 0, 60)
	if next.Pending.Margins == nil {
		t.Fatal("expected scheduled margins")
	}
	if got := next.Pending.Margins.Bottom; got != 90 {
		t.Errorf("scheduled bottom margin = %g, want 90", got)
	}
}

// TestApplyPendingToActive tests the page-boundary transition and its
// idempotence.
func TestApplyPendingToActive(t *testing.T) {
	st := baseState()
	marker := model.SectionMarker{
		Type:     model.BreakNextPage,
		Columns:  &model.ColumnSpec{Count: 2, Gap: 18},
		PageSize: &model.PageSize{Width: 595, Height: 842},
	}
	_, st = ScheduleSectionBreak(marker, st, baseMargins(), 0, 0)

	applied := ApplyPendingToActive(st)
	if applied.Active.Columns != (model.ColumnSpec{Count: 2, Gap: 18}) {
		t.Errorf("active columns = %+v after apply", applied.Active.Columns)
	}
	if applied.Active.PageSize != (model.PageSize{Width: 595, Height: 842}) {
		t.Errorf("active page size = %+v after apply", applied.Active.PageSize)
	}
	if !applied.Pending.IsEmpty() {
		t.Error("pending not cleared after apply")
	}

	// A second apply with nothing scheduled changes nothing.
	again := ApplyPendingToActive(applied)
	if again.Active != applied.Active {
		t.Errorf("second apply changed geometry: %+v vs %+v", again.Active, applied.Active)
	}
}

// TestInvalidColumnCountSanitized verifies malformed column specs clamp
// instead of failing.
func TestInvalidColumnCountSanitized(t *testing.T) {
	marker := model.SectionMarker{
		Type:    model.BreakNextPage,
		Columns: &model.ColumnSpec{Count: 0, Gap: -4},
	}
	_, next := ScheduleSectionBreak(marker, baseState(), baseMargins(), 0, 0)
	if next.Pending.Columns == nil {
		t.Fatal("columns not scheduled")
	}
	if got := *next.Pending.Columns; got != model.SingleColumn() {
		t.Errorf("sanitized columns = %+v, want single column", got)
	}
}
