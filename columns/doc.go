// Package columns balances content across the columns of a multi-column
// section so column heights converge near-equal.
//
// Two related algorithms share the block-constraint semantics:
//
//   - [Balancer.Balance] distributes measured blocks before placement. It
//     runs a bounded iterative search: simulate a greedy left-to-right fill
//     at a target column height, score the simulation by the variance of
//     non-empty column heights plus a penalty for empty columns, and refine
//     the target until the columns fall within tolerance or the iteration
//     budget runs out. Paragraph blocks may be split at a line boundary when
//     an orphan/widow-respecting cut point exists.
//
//   - [Balancer.RebalancePositioned] redistributes fragments that were
//     already positioned in a single column, moving whole vertical rows into
//     later columns until each column holds roughly total/count of the
//     content height. This is the post-placement variant used at continuous
//     section boundaries and at end of document.
//
// Both computations are pure and deterministic: identical inputs always
// produce identical assignments.
package columns
