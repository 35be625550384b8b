package columns

import (
	"math"
	"sort"

	"github.com/tsawler/pageflow/model"
)

// rowYTolerance groups fragments whose Y coordinates differ by less than
// this many points into the same vertical row.
const rowYTolerance = 0.01

// positionedRow is a group of fragments sharing a vertical position.
type positionedRow struct {
	y         float64
	height    float64 // max fragment height in the row
	fragments []*model.Fragment
}

// RebalancePositioned redistributes fragments that were laid out in a
// single column across the section's columns. Fragments are grouped into
// vertical rows by Y coordinate; whole rows move to the next column once
// the running column height plus the next row's height reaches or exceeds
// the per-column target (a >= comparison, so a row landing exactly on the
// target moves) and a later column still exists.
//
// Each moved fragment's X is set to its column's offset, its Y restacked
// from the top margin of the new column, and its width set to the column
// width. No-op for single-column layouts, empty input, or when the target
// falls below the configured minimum column height.
func (b *Balancer) RebalancePositioned(fragments []*model.Fragment, spec model.ColumnSpec, margins model.Margins, topMargin float64, pageSize model.PageSize) {
	if spec.Count <= 1 || len(fragments) == 0 {
		return
	}

	rows := groupIntoRows(fragments)
	total := 0.0
	for _, row := range rows {
		total += row.height
	}

	target := total / float64(spec.Count)
	if target < b.config.MinColumnHeight {
		return
	}

	contentWidth := model.ClampNonNegative(pageSize.Width - margins.Left - margins.Right)
	colWidth := spec.ColumnWidth(contentWidth)

	col := 0
	colHeight := 0.0
	for _, row := range rows {
		if col < spec.Count-1 && colHeight+row.height >= target {
			col++
			colHeight = 0
		}
		x := margins.Left + spec.ColumnOffset(col, contentWidth)
		y := topMargin + colHeight
		for _, frag := range row.fragments {
			frag.ColumnIndex = col
			frag.X = x
			frag.Y = y
			frag.Width = colWidth
		}
		colHeight += row.height
	}
}

// groupIntoRows clusters fragments by vertical coordinate and returns the
// rows sorted top to bottom. A row's height is the maximum height of its
// fragments.
func groupIntoRows(fragments []*model.Fragment) []*positionedRow {
	sorted := make([]*model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var rows []*positionedRow
	for _, frag := range sorted {
		if n := len(rows); n > 0 && math.Abs(rows[n-1].y-frag.Y) < rowYTolerance {
			row := rows[n-1]
			row.fragments = append(row.fragments, frag)
			if frag.Height > row.height {
				row.height = frag.Height
			}
			continue
		}
		rows = append(rows, &positionedRow{
			y:         frag.Y,
			height:    frag.Height,
			fragments: []*model.Fragment{frag},
		})
	}
	return rows
}
