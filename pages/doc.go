// Package pages provides the reference page-building host for the layout
// core: a deterministic [Builder] implementing the model.Cursor capability,
// and the [Flow] loop that drives a whole layout pass.
//
// # Builder
//
// The Builder creates pages from the active section geometry, tracks the
// cursor within the current column, wraps exhausted columns to new pages,
// and can start a fresh mid-page column region when a continuous section
// break changes the column configuration. Blank pages inserted to satisfy
// an even/odd section-start parity are real pages with no fragments.
//
// # Flow
//
// The Flow consumes the ordered stream of measured blocks and section-break
// markers. Section breaks go through the section state machine; paragraphs
// and images are placed directly with keep and orphan/widow handling;
// tables go through the tables fragmenter; and column regions are balanced
// at continuous section boundaries and at end of document.
//
// A layout pass is synchronous, pure with respect to its inputs, and fully
// deterministic: identical inputs always yield identical pages.
package pages
