package section

import (
	"math"

	"github.com/tsawler/pageflow/model"
)

// ScheduleSectionBreak processes one section-break marker against the
// current state. It returns the break decision for the host page-building
// loop and the new state with the marker's geometry scheduled. The function
// is pure: it has no side effects beyond its return values.
//
// baseMargins are the explicit or document-default margins the marker's
// margins override. maxHeaderContentHeight and maxFooterContentHeight are
// the measured heights of the section's header and footer content; when
// positive they can grow the effective top and bottom margins so reserved
// header/footer space is never painted over.
func ScheduleSectionBreak(marker model.SectionMarker, st State, baseMargins model.Margins, maxHeaderContentHeight, maxFooterContentHeight float64) (model.BreakDecision, State) {
	// Effective column configuration: an explicit spec is used verbatim,
	// an absent spec always resets to single-column. Absence is never
	// "inherit previous".
	columns := model.SingleColumn()
	if marker.Columns != nil {
		columns = sanitizeColumns(*marker.Columns)
	}
	columnsChanging := !columns.Equal(st.Active.Columns) ||
		(marker.Columns == nil && st.Active.Columns.IsMultiColumn())

	headerDistance := st.Active.HeaderDistance
	if marker.HeaderDistance != nil {
		headerDistance = model.ClampNonNegative(*marker.HeaderDistance)
	}
	footerDistance := st.Active.FooterDistance
	if marker.FooterDistance != nil {
		footerDistance = model.ClampNonNegative(*marker.FooterDistance)
	}

	margins := baseMargins
	if marker.Margins != nil {
		margins = *marker.Margins
	}
	margins = effectiveMargins(margins, headerDistance, footerDistance, maxHeaderContentHeight, maxFooterContentHeight)

	decision := model.BreakDecision{}
	switch marker.Type {
	case model.BreakNextPage:
		decision.ForcePageBreak = true
	case model.BreakEvenPage:
		decision.ForcePageBreak = true
		decision.RequiredParity = model.ParityEven
	case model.BreakOddPage:
		decision.ForcePageBreak = true
		decision.RequiredParity = model.ParityOdd
	default:
		// Continuous: stay on the page, but a column configuration
		// change still forces a mid-page column re-flow.
		decision.ForceMidPageRegion = columnsChanging
	}
	if marker.RequirePageBoundary {
		decision.ForcePageBreak = true
		decision.ForceMidPageRegion = false
	}

	if marker.FirstSection && !st.HasPages {
		// No prior page boundary to defer to: geometry goes straight
		// into the active state.
		st.Active.Margins = margins
		st.Active.HeaderDistance = headerDistance
		st.Active.FooterDistance = footerDistance
		if marker.PageSize != nil {
			st.Active.PageSize = sanitizePageSize(*marker.PageSize, st.Active.PageSize)
		}
		if marker.Orientation != nil {
			st.Active.Orientation = *marker.Orientation
		}
		st.Active.Columns = columns
		st.Pending = model.PendingGeometry{}
		return decision, st
	}

	pending := st.Pending
	if marker.Margins != nil || margins != st.Active.Margins {
		m := margins
		pending.Margins = &m
	}
	if marker.HeaderDistance != nil {
		h := headerDistance
		pending.HeaderDistance = &h
	}
	if marker.FooterDistance != nil {
		f := footerDistance
		pending.FooterDistance = &f
	}
	if marker.PageSize != nil {
		size := sanitizePageSize(*marker.PageSize, st.Active.PageSize)
		pending.PageSize = &size
	}
	if marker.Orientation != nil {
		o := *marker.Orientation
		pending.Orientation = &o
	}
	// The column configuration is always scheduled, even when no change
	// was detected, so the next page boundary has a definitive target.
	c := columns
	pending.Columns = &c

	st.Pending = pending
	return decision, st
}

// effectiveMargins grows the top and bottom margins to cover measured
// header and footer content. A margin never shrinks below its explicit
// value, and absent (non-positive) content heights leave it untouched.
func effectiveMargins(margins model.Margins, headerDistance, footerDistance, headerContent, footerContent float64) model.Margins {
	if headerContent > 0 {
		margins.Top = math.Max(margins.Top, headerDistance+headerContent)
	}
	if footerContent > 0 {
		margins.Bottom = math.Max(margins.Bottom, footerDistance+footerContent)
	}
	margins.Top = model.ClampNonNegative(margins.Top)
	margins.Bottom = model.ClampNonNegative(margins.Bottom)
	margins.Left = model.ClampNonNegative(margins.Left)
	margins.Right = model.ClampNonNegative(margins.Right)
	return margins
}

func sanitizeColumns(c model.ColumnSpec) model.ColumnSpec {
	if c.Count < 1 {
		c.Count = 1
	}
	c.Gap = model.ClampNonNegative(c.Gap)
	if c.Count == 1 {
		c.Gap = 0
	}
	return c
}

func sanitizePageSize(size, fallback model.PageSize) model.PageSize {
	size.Width = model.SanitizeLength(size.Width, fallback.Width)
	size.Height = model.SanitizeLength(size.Height, fallback.Height)
	return size
}
