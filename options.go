package pageflow

import (
	"github.com/tsawler/pageflow/columns"
	"github.com/tsawler/pageflow/tables"
)

// PaginateOptions holds configuration overrides for a layout pass. Unset
// fields fall back to the document's own geometry.
type PaginateOptions struct {
	// Geometry overrides (nil means use the document's value)
	pageWidth  *float64
	pageHeight *float64
	margins    *[4]float64 // top, bottom, left, right
	columns    *int
	columnGap  *float64
	landscape  *bool

	// Header/footer content measurements
	headerContentHeight *float64
	footerContentHeight *float64

	// Layout engine knobs
	balancing        *columns.Config
	tables           *tables.Config
	balanceTolerance *float64
	disableBalancing bool
	maxPages         int
}

// defaultOptions returns the default pagination options.
func defaultOptions() PaginateOptions {
	return PaginateOptions{
		maxPages: 0, // 0 means the engine default
	}
}

// clone creates a deep copy of PaginateOptions.
func (o PaginateOptions) clone() PaginateOptions {
	newOpts := PaginateOptions{
		disableBalancing: o.disableBalancing,
		maxPages:         o.maxPages,
	}
	if o.balancing != nil {
		b := *o.balancing
		newOpts.balancing = &b
	}
	if o.tables != nil {
		t := *o.tables
		newOpts.tables = &t
	}
	newOpts.pageWidth = copyFloat(o.pageWidth)
	newOpts.pageHeight = copyFloat(o.pageHeight)
	newOpts.columnGap = copyFloat(o.columnGap)
	newOpts.headerContentHeight = copyFloat(o.headerContentHeight)
	newOpts.footerContentHeight = copyFloat(o.footerContentHeight)
	newOpts.balanceTolerance = copyFloat(o.balanceTolerance)
	if o.margins != nil {
		m := *o.margins
		newOpts.margins = &m
	}
	if o.columns != nil {
		c := *o.columns
		newOpts.columns = &c
	}
	if o.landscape != nil {
		l := *o.landscape
		newOpts.landscape = &l
	}
	return newOpts
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
