// Package model provides the shared data model for the page layout core.
//
// This package defines the types that flow between the layout components:
// the measured content blocks produced upstream, the section geometry that
// governs page construction, and the positioned fragments produced by a
// layout pass.
//
// # Geometry
//
// Page geometry is described by [SectionGeometry]: margins, header and footer
// reserved distances, page size, orientation, and column configuration.
// Geometry changes scheduled by a section break are held in a
// [PendingGeometry] overlay and applied at the next page boundary.
//
// # Content Blocks
//
// A [Block] is a pre-measured unit of content (paragraph, table, or image).
// Measurement happens upstream; the layout core only reads heights:
//
//   - Paragraphs carry per-line heights and break constraints
//     (orphan/widow minimums, keep-with-next, keep-together).
//   - Tables carry per-row heights and per-cell line heights via
//     [TableMeasure].
//   - Images carry a single measured extent.
//
// # Fragments
//
// A [Fragment] is the positioned, page/column-local slice of a block
// produced by one layout pass. Table blocks may produce several fragments,
// each with a [TableFragment] describing its row range and continuation
// state. Fragments are transient: they are rebuilt from scratch on every
// re-layout.
//
// # Page Cursor
//
// The [Cursor] interface is the narrow capability the layout core consumes
// from the host page builder: remaining space in the current column,
// advancing to the next column or page, and column X offsets. Tests
// substitute deterministic stubs; the pages package provides the reference
// implementation.
package model
