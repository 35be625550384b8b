package tables

import (
	"github.com/tsawler/pageflow/model"
)

// computePartialRow fits as many of each cell's lines as the available
// height allows. fromLines carries per-cell progress from a prior part; nil
// means the row's first part.
//
// Cells advance independently through their own lines against their own
// available height (their own vertical padding subtracted). They are not
// normalized to a common line count: a taller cell may render more lines
// than a shorter neighbor in the same part. The part's height is the
// maximum across cells of rendered lines plus that cell's padding.
//
// The second return value is false when no cell advanced by any line.
func (f *Fragmenter) computePartialRow(row model.RowMeasure, fromLines []int, avail float64) (*model.PartialRow, bool) {
	if len(row.Cells) == 0 || avail <= 0 {
		return nil, false
	}

	from := make([]int, len(row.Cells))
	if fromLines != nil {
		copy(from, fromLines)
	}

	to := make([]int, len(row.Cells))
	height := 0.0
	progress := false
	exhausted := true

	for c, cell := range row.Cells {
		start := clampLine(from[c], cell.LineCount())
		cellAvail := avail - cell.PaddingTop - cell.PaddingBottom

		fit := start
		used := 0.0
		for i := start; i < cell.LineCount(); i++ {
			lh := model.ClampNonNegative(cell.LineHeights[i])
			if used+lh > cellAvail {
				break
			}
			used += lh
			fit = i + 1
		}

		from[c] = start
		to[c] = fit
		if fit > start {
			progress = true
			if h := used + cell.PaddingTop + cell.PaddingBottom; h > height {
				height = h
			}
		}
		if fit < cell.LineCount() {
			exhausted = false
		}
	}

	if !progress {
		return nil, false
	}

	// The caller stamps the row index; this function only sees the row's
	// measurements.
	return &model.PartialRow{
		FromLines:   from,
		ToLines:     to,
		IsFirstPart: allZero(from),
		IsLastPart:  exhausted,
		Height:      height,
	}, true
}

// forceLineProgress advances every unfinished cell by exactly one line.
// Used when a full column could not fit a single line, so the row still
// exhausts instead of looping.
func forceLineProgress(row model.RowMeasure, fromLines []int) *model.PartialRow {
	from := make([]int, len(row.Cells))
	if fromLines != nil {
		copy(from, fromLines)
	}

	to := make([]int, len(row.Cells))
	height := 0.0
	exhausted := true

	for c, cell := range row.Cells {
		start := clampLine(from[c], cell.LineCount())
		from[c] = start
		to[c] = start
		if start < cell.LineCount() {
			to[c] = start + 1
			h := model.ClampNonNegative(cell.LineHeights[start]) + cell.PaddingTop + cell.PaddingBottom
			if h > height {
				height = h
			}
		}
		if to[c] < cell.LineCount() {
			exhausted = false
		}
	}

	return &model.PartialRow{
		FromLines:   from,
		ToLines:     to,
		IsFirstPart: allZero(from),
		IsLastPart:  exhausted,
		Height:      height,
	}
}

func clampLine(n, count int) int {
	if n < 0 {
		return 0
	}
	if n > count {
		return count
	}
	return n
}

func allZero(lines []int) bool {
	for _, n := range lines {
		if n != 0 {
			return false
		}
	}
	return true
}
