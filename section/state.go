// Package section tracks a section's active and pending page geometry and
// turns section-break markers into break decisions.
//
// Geometry scheduled by a section break is held in a pending overlay and
// applied to the active geometry only at a page boundary; the first
// section's geometry is written directly into the active state because no
// page boundary exists yet. State values are immutable: every transition is
// a pure function returning a new State, which keeps re-layout
// referentially transparent.
package section

import (
	"github.com/tsawler/pageflow/model"
)

// State is the section state machine's value: the active geometry, the
// pending overlay, and whether any page has been created yet.
type State struct {
	// Active is the geometry governing pages created now.
	Active model.SectionGeometry

	// Pending holds geometry changes that apply at the next page boundary.
	Pending model.PendingGeometry

	// HasPages is set by the host once the first page exists. Until
	// then, first-section geometry bypasses the pending stage.
	HasPages bool
}

// NewState returns a state with the given active geometry and nothing
// pending.
func NewState(geom model.SectionGeometry) State {
	return State{Active: geom}
}

// WithPages returns a copy of the state with the page-created flag set.
func (st State) WithPages() State {
	st.HasPages = true
	return st
}

// ApplyPendingToActive copies every scheduled pending field into the active
// geometry and clears the pending overlay. Calling it again with no
// intervening scheduling is a no-op.
func ApplyPendingToActive(st State) State {
	p := st.Pending
	if p.Margins != nil {
		st.Active.Margins = *p.Margins
	}
	if p.HeaderDistance != nil {
		st.Active.HeaderDistance = *p.HeaderDistance
	}
	if p.FooterDistance != nil {
		st.Active.FooterDistance = *p.FooterDistance
	}
	if p.PageSize != nil {
		st.Active.PageSize = *p.PageSize
	}
	if p.Columns != nil {
		st.Active.Columns = *p.Columns
	}
	if p.Orientation != nil {
		st.Active.Orientation = *p.Orientation
	}
	st.Pending = model.PendingGeometry{}
	return st
}
