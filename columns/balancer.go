package columns

import (
	"math"

	"github.com/tsawler/pageflow/model"
)

// Config holds configuration for column balancing.
type Config struct {
	// MaxIterations bounds the balancing search. The search always
	// terminates within this many simulations.
	// Default: 24
	MaxIterations int

	// Tolerance is the maximum spread (max - min) between non-empty
	// column heights, in points, for a simulation to count as converged.
	// Default: 4 points
	Tolerance float64

	// MinColumnHeight is the smallest useful target column height.
	// Default: 12 points
	MinColumnHeight float64

	// MinBalanceHeight is the total content height below which balancing
	// is skipped and content stays in the first column.
	// Default: 24 points
	MinBalanceHeight float64

	// EmptyColumnPenalty is added to a simulation's score for every
	// column left empty.
	// Default: 1e6
	EmptyColumnPenalty float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxIterations:      24,
		Tolerance:          4.0,
		MinColumnHeight:    12.0,
		MinBalanceHeight:   24.0,
		EmptyColumnPenalty: 1e6,
	}
}

// Context carries the inputs of one pre-placement balancing computation.
type Context struct {
	// Blocks are the measured blocks to distribute, in document order.
	Blocks []*model.Block

	// ColumnCount is the number of columns to fill.
	ColumnCount int

	// AvailableHeight is the full usable column height of the region.
	AvailableHeight float64
}

// Balancer distributes content across columns.
type Balancer struct {
	config Config
}

// NewBalancer creates a balancer with default configuration.
func NewBalancer() *Balancer {
	return &Balancer{config: DefaultConfig()}
}

// NewBalancerWithConfig creates a balancer with custom configuration.
func NewBalancerWithConfig(config Config) *Balancer {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultConfig().MaxIterations
	}
	return &Balancer{config: config}
}

// ShouldBalance decides whether a section's columns are balanced at its
// end. An explicit flag always wins; otherwise continuous sections and the
// document's final section balance by default.
func ShouldBalance(sectionType model.BreakType, explicit *bool, isLastSection bool) bool {
	if explicit != nil {
		return *explicit
	}
	return sectionType == model.BreakContinuous || isLastSection
}

// Balance assigns the context's blocks to columns so the column heights
// converge near-equal. The result always assigns every block to some
// column; Converged reports whether the configured tolerance was met.
func (b *Balancer) Balance(ctx Context) model.BalancingResult {
	if trivial, ok := b.trivialResult(ctx); ok {
		return trivial
	}

	total := 0.0
	for _, blk := range ctx.Blocks {
		total += blk.TotalHeight()
	}

	target := math.Ceil(total / float64(ctx.ColumnCount))
	target = math.Max(target, b.config.MinColumnHeight)
	if ctx.AvailableHeight > 0 {
		target = math.Min(target, ctx.AvailableHeight)
	}

	var best *simulation
	bestScore := math.Inf(1)

	for i := 0; i < b.config.MaxIterations; i++ {
		sim := b.simulate(ctx, target)
		score := b.score(sim)
		if score < bestScore {
			bestScore = score
			best = sim
		}
		if sim.nonEmpty() > 1 && sim.spread() <= b.config.Tolerance {
			return sim.result(true)
		}
		// Refine toward the simulation's bottleneck column. A fixed
		// point means no better target is reachable.
		next := math.Max(sim.maxHeight(), b.config.MinColumnHeight)
		if ctx.AvailableHeight > 0 {
			next = math.Min(next, ctx.AvailableHeight)
		}
		if next == target {
			break
		}
		target = next
	}

	if best != nil {
		converged := best.spread() <= b.config.Tolerance
		return best.result(converged)
	}
	return b.sequentialResult(ctx)
}

// trivialResult handles the early exits: nothing to balance, a single
// unsplittable block, or too little content to bother.
func (b *Balancer) trivialResult(ctx Context) (model.BalancingResult, bool) {
	if ctx.ColumnCount <= 1 || len(ctx.Blocks) == 0 {
		return b.sequentialResult(ctx), true
	}

	total := 0.0
	for _, blk := range ctx.Blocks {
		total += blk.TotalHeight()
	}
	if total < b.config.MinBalanceHeight {
		return b.sequentialResult(ctx), true
	}

	if len(ctx.Blocks) == 1 && !splittable(ctx.Blocks[0]) {
		return b.sequentialResult(ctx), true
	}
	return model.BalancingResult{}, false
}

// sequentialResult assigns every block to the first column.
func (b *Balancer) sequentialResult(ctx Context) model.BalancingResult {
	count := ctx.ColumnCount
	if count < 1 {
		count = 1
	}
	res := model.BalancingResult{
		Assignments:   make(map[string]int, len(ctx.Blocks)),
		ColumnHeights: make([]float64, count),
		Converged:     true,
	}
	for _, blk := range ctx.Blocks {
		res.Assignments[blk.ID] = 0
		res.ColumnHeights[0] += blk.TotalHeight()
	}
	return res
}

// simulation is one greedy fill of the columns at a fixed target height.
type simulation struct {
	assignments map[string]int
	breaks      map[string]model.BlockBreak
	heights     []float64
}

func (s *simulation) nonEmpty() int {
	n := 0
	for _, h := range s.heights {
		if h > 0 {
			n++
		}
	}
	return n
}

func (s *simulation) maxHeight() float64 {
	max := 0.0
	for _, h := range s.heights {
		if h > max {
			max = h
		}
	}
	return max
}

// spread is the difference between the tallest and shortest non-empty
// column. Fewer than two non-empty columns spread zero.
func (s *simulation) spread() float64 {
	min, max := math.Inf(1), 0.0
	n := 0
	for _, h := range s.heights {
		if h <= 0 {
			continue
		}
		n++
		min = math.Min(min, h)
		max = math.Max(max, h)
	}
	if n < 2 {
		return 0
	}
	return max - min
}

func (s *simulation) result(converged bool) model.BalancingResult {
	res := model.BalancingResult{
		Assignments:   s.assignments,
		ColumnHeights: s.heights,
		Converged:     converged,
	}
	if len(s.breaks) > 0 {
		res.Breaks = s.breaks
	}
	return res
}

// score rates a simulation: the variance of non-empty column heights plus
// a penalty per empty column. Lower is better.
func (b *Balancer) score(s *simulation) float64 {
	sum, n := 0.0, 0
	for _, h := range s.heights {
		if h > 0 {
			sum += h
			n++
		}
	}
	if n == 0 {
		return math.Inf(1)
	}
	mean := sum / float64(n)
	variance := 0.0
	for _, h := range s.heights {
		if h > 0 {
			d := h - mean
			variance += d * d
		}
	}
	variance /= float64(n)
	return variance + b.config.EmptyColumnPenalty*float64(len(s.heights)-n)
}

// simulate fills columns left to right at the given target height. A block
// that would overflow the current column stays when keep-with-next holds it
// to a following block that still fits combined, splits at a valid
// orphan/widow-respecting line boundary when breakable, and advances to the
// next column otherwise. The last column absorbs everything left.
func (b *Balancer) simulate(ctx Context, target float64) *simulation {
	sim := &simulation{
		assignments: make(map[string]int, len(ctx.Blocks)),
		breaks:      make(map[string]model.BlockBreak),
		heights:     make([]float64, ctx.ColumnCount),
	}

	col := 0
	last := ctx.ColumnCount - 1

	for i := 0; i < len(ctx.Blocks); i++ {
		blk := ctx.Blocks[i]
		h := blk.TotalHeight()

		if col < last && sim.heights[col]+h > target {
			kept := false
			if blk.Constraints.KeepWithNext && i+1 < len(ctx.Blocks) {
				next := ctx.Blocks[i+1]
				if sim.heights[col]+h+next.TotalHeight() <= target {
					kept = true
				}
			}
			if !kept {
				remaining := target - sim.heights[col]
				if cut, ok := b.findSplitPoint(blk, remaining); ok {
					// First part stays, the remainder opens the
					// next column.
					sim.assignments[blk.ID] = col
					sim.heights[col] += cut.HeightBefore
					sim.breaks[blk.ID] = cut
					col++
					sim.heights[col] += cut.HeightAfter
					continue
				}
				col++
			}
		}

		sim.assignments[blk.ID] = col
		sim.heights[col] += h
	}
	return sim
}

// splittable reports whether balancing may cut the block at a line
// boundary at all.
func splittable(blk *model.Block) bool {
	return blk.Constraints.CanBreak && !blk.Constraints.KeepTogether && len(blk.LineHeights) > 1
}

// findSplitPoint searches a split for one balancing simulation.
func (b *Balancer) findSplitPoint(blk *model.Block, remaining float64) (model.BlockBreak, bool) {
	return SplitPoint(blk, remaining)
}

// SplitPoint searches for a line boundary of a paragraph block that fits
// the remaining space. Lines accumulate until one no longer fits; that line
// is the candidate cut. The cut moves earlier when it would carry fewer
// than the widow minimum into the next column, and is rejected outright
// when it would leave fewer than the orphan minimum behind.
func SplitPoint(blk *model.Block, remaining float64) (model.BlockBreak, bool) {
	if !splittable(blk) || remaining <= 0 {
		return model.BlockBreak{}, false
	}

	lines := blk.LineHeights
	keep := 0
	height := 0.0
	for i, lh := range lines {
		lh = model.ClampNonNegative(lh)
		if height+lh > remaining {
			break
		}
		height += lh
		keep = i + 1
	}
	if keep == 0 || keep >= len(lines) {
		return model.BlockBreak{}, false
	}

	orphans := minLines(blk.Constraints.OrphanLines)
	widows := minLines(blk.Constraints.WidowLines)

	// Too few lines would carry over: move the cut earlier.
	if len(lines)-keep < widows {
		keep = len(lines) - widows
	}
	// Too few lines would stay behind: no earlier cut can fix that.
	if keep < orphans {
		return model.BlockBreak{}, false
	}

	return model.BlockBreak{
		BreakAfterLine: keep,
		HeightBefore:   blk.HeightOfLines(0, keep),
		HeightAfter:    blk.HeightOfLines(keep, len(lines)),
	}, true
}

// minLines treats unset orphan/widow constraints as a one-line minimum.
func minLines(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
