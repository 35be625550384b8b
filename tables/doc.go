// Package tables fragments measured table blocks across pages and columns.
//
// A table that does not fit the space remaining in the current column is
// split at row boundaries. When a single row does not fit, the row itself
// is split mid-row, unless the row is flagged as unsplittable, in which
// case the fragment ends before it. A row taller than a full page is
// force-split regardless of the flag, so fragmentation always terminates.
//
// # Partial Rows
//
// A mid-row split walks every cell's lines independently and fits as many
// as that cell's own available height allows. Cells are not normalized to
// advance the same number of lines: a taller cell may render more lines
// than a shorter neighbor in the same part.
//
// # Continuations
//
// Continuation fragments repeat the table's header rows when their combined
// height fits the remaining space; headers never force an otherwise
// avoidable split. A pending partial row is retried on each subsequent
// column or page with its per-cell line progress carried forward.
//
// # Monolithic Tables
//
// Floating (anchored) tables are placed as a single fragment. They advance
// to a new column only when they do not fit at all in the remaining space
// of a non-empty column, and are never row-split.
//
// The fragmenter drives the host's [model.Cursor] capability and appends
// fragments to the current page state; it holds no state of its own between
// tables and performs no I/O.
package tables
