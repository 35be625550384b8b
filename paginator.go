package pageflow

import (
	"fmt"
	"io"

	"github.com/tsawler/pageflow/columns"
	"github.com/tsawler/pageflow/htmldoc"
	"github.com/tsawler/pageflow/model"
	"github.com/tsawler/pageflow/pages"
	"github.com/tsawler/pageflow/tables"
	"github.com/tsawler/pageflow/yamldoc"
)

// sourceFormat identifies how a Paginator acquires its document.
type sourceFormat int

const (
	sourceNone sourceFormat = iota
	sourceYAML
	sourceHTML
)

// Paginator provides a fluent interface for running a layout pass over a
// measured document. Each configuration method returns a new Paginator
// instance, making it safe for concurrent use and allowing method chaining.
type Paginator struct {
	// Source
	filename string
	format   sourceFormat
	source   io.Reader

	// Parsed document (set up front by FromDocument, or lazily by a
	// terminal operation)
	doc *yamldoc.Document

	// Configuration
	options PaginateOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Paginator with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Paginator) clone() *Paginator {
	return &Paginator{
		filename: p.filename,
		format:   p.format,
		source:   p.source,
		doc:      p.doc,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// FromYAMLReader creates a Paginator that parses YAML from an io.Reader.
//
// Example:
//
//	result, warnings, err := pageflow.FromYAMLReader(f).Paginate()
func FromYAMLReader(r io.Reader) *Paginator {
	return &Paginator{
		format:  sourceYAML,
		source:  r,
		options: defaultOptions(),
	}
}

// FromHTMLReader creates a Paginator that parses annotated HTML from an
// io.Reader. Relative image sources resolve against the working directory.
func FromHTMLReader(r io.Reader) *Paginator {
	return &Paginator{
		format:  sourceHTML,
		source:  r,
		options: defaultOptions(),
	}
}

// ensureDocument parses the source document if not already parsed.
func (p *Paginator) ensureDocument() error {
	if p.doc != nil {
		return nil
	}
	if p.filename == "" && p.source == nil {
		return fmt.Errorf("no document specified")
	}

	var (
		doc *yamldoc.Document
		err error
	)
	switch p.format {
	case sourceYAML:
		if p.source != nil {
			doc, err = yamldoc.OpenReader(p.source)
		} else {
			doc, err = yamldoc.Open(p.filename)
		}
	case sourceHTML:
		if p.source != nil {
			doc, err = htmldoc.OpenReader(p.source)
		} else {
			doc, err = htmldoc.Open(p.filename)
		}
	default:
		return fmt.Errorf("unsupported document source")
	}
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	p.doc = doc
	return nil
}

// ============================================================================
// Configuration Methods (return new Paginator instance)
// ============================================================================

// PageSize overrides the document's default page size, in points.
//
// Example:
//
//	result, _, err := pageflow.FromYAML("doc.yaml").PageSize(595, 842).Paginate()
func (p *Paginator) PageSize(width, height float64) *Paginator {
	np := p.clone()
	np.options.pageWidth = &width
	np.options.pageHeight = &height
	return np
}

// Margins overrides the document's default margins, in points.
//
// Example:
//
//	result, _, err := pageflow.FromYAML("doc.yaml").Margins(54, 54, 54, 54).Paginate()
func (p *Paginator) Margins(top, bottom, left, right float64) *Paginator {
	np := p.clone()
	m := [4]float64{top, bottom, left, right}
	np.options.margins = &m
	return np
}

// Columns overrides the document's default column configuration.
//
// Example:
//
//	result, _, err := pageflow.FromYAML("doc.yaml").Columns(2, 18).Paginate()
func (p *Paginator) Columns(count int, gap float64) *Paginator {
	np := p.clone()
	np.options.columns = &count
	np.options.columnGap = &gap
	return np
}

// Landscape overrides the document's default orientation to landscape.
func (p *Paginator) Landscape() *Paginator {
	np := p.clone()
	l := true
	np.options.landscape = &l
	return np
}

// HeaderContentHeight sets the measured height of header content. Positive
// values grow the effective top margin when the header would otherwise
// collide with body content.
func (p *Paginator) HeaderContentHeight(h float64) *Paginator {
	np := p.clone()
	np.options.headerContentHeight = &h
	return np
}

// FooterContentHeight sets the measured height of footer content. Positive
// values grow the effective bottom margin.
func (p *Paginator) FooterContentHeight(h float64) *Paginator {
	np := p.clone()
	np.options.footerContentHeight = &h
	return np
}

// BalanceTolerance sets the column-balancing tolerance: the maximum spread
// between the tallest and shortest balanced column, in points.
func (p *Paginator) BalanceTolerance(t float64) *Paginator {
	np := p.clone()
	np.options.balanceTolerance = &t
	return np
}

// WithBalancing replaces the column balancer configuration. A later
// BalanceTolerance call still overrides the tolerance field.
//
// Example:
//
//	cfg := columns.DefaultConfig()
//	cfg.MaxIterations = 50
//	result, _, err := pageflow.FromYAML("doc.yaml").WithBalancing(cfg).Paginate()
func (p *Paginator) WithBalancing(cfg columns.Config) *Paginator {
	np := p.clone()
	np.options.balancing = &cfg
	return np
}

// WithTableConfig replaces the table fragmenter configuration.
func (p *Paginator) WithTableConfig(cfg tables.Config) *Paginator {
	np := p.clone()
	np.options.tables = &cfg
	return np
}

// DisableColumnBalancing turns off column balancing entirely. Content
// still wraps between columns; it just never redistributes to even the
// column heights at section boundaries.
func (p *Paginator) DisableColumnBalancing() *Paginator {
	np := p.clone()
	np.options.disableBalancing = true
	return np
}

// MaxPages caps the number of pages a layout pass may produce before it
// aborts with an error.
func (p *Paginator) MaxPages(n int) *Paginator {
	np := p.clone()
	np.options.maxPages = n
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Paginate runs the layout pass and returns the built pages, any non-fatal
// warnings, and an error if the pass failed. Warnings indicate issues such
// as unsplittable blocks taller than a column.
//
// Example:
//
//	result, warnings, err := pageflow.FromYAML("doc.yaml").Paginate()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pageflow.FormatWarnings(warnings))
//	}
func (p *Paginator) Paginate() (*pages.Result, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return nil, nil, err
	}

	flow := pages.NewFlowWithConfig(p.flowConfig())
	result, err := flow.Layout(p.doc.Items)
	if err != nil {
		return nil, nil, err
	}

	warnings := make([]Warning, 0, len(result.Warnings))
	for _, msg := range result.Warnings {
		warnings = append(warnings, Warning{Code: WarnLayout, Message: msg})
	}
	return result, warnings, nil
}

// Fragments runs the layout pass and returns every placed fragment in
// placement order.
//
// Example:
//
//	frags, warnings, err := pageflow.FromYAML("doc.yaml").Fragments()
func (p *Paginator) Fragments() ([]*model.Fragment, []Warning, error) {
	result, warnings, err := p.Paginate()
	if err != nil {
		return nil, warnings, err
	}
	return result.AllFragments(), warnings, nil
}

// PageCount runs the layout pass and returns the number of pages produced,
// including blank parity pages.
//
// Example:
//
//	count, err := pageflow.FromYAML("doc.yaml").PageCount()
func (p *Paginator) PageCount() (int, error) {
	result, _, err := p.Paginate()
	if err != nil {
		return 0, err
	}
	return len(result.Pages), nil
}

// flowConfig assembles the engine configuration from the document's
// defaults and the Paginator's overrides.
func (p *Paginator) flowConfig() pages.Config {
	config := pages.DefaultConfig()
	config.Geometry = p.doc.Geometry
	config.HeaderContentHeight = p.doc.HeaderContentHeight
	config.FooterContentHeight = p.doc.FooterContentHeight

	o := p.options
	if o.pageWidth != nil {
		config.Geometry.PageSize.Width = model.SanitizeLength(*o.pageWidth, config.Geometry.PageSize.Width)
	}
	if o.pageHeight != nil {
		config.Geometry.PageSize.Height = model.SanitizeLength(*o.pageHeight, config.Geometry.PageSize.Height)
	}
	if o.margins != nil {
		config.Geometry.Margins = model.Margins{
			Top:    model.ClampNonNegative(o.margins[0]),
			Bottom: model.ClampNonNegative(o.margins[1]),
			Left:   model.ClampNonNegative(o.margins[2]),
			Right:  model.ClampNonNegative(o.margins[3]),
		}
	}
	if o.columns != nil {
		count := *o.columns
		if count < 1 {
			count = 1
		}
		gap := 0.0
		if o.columnGap != nil {
			gap = model.ClampNonNegative(*o.columnGap)
		}
		config.Geometry.Columns = model.ColumnSpec{Count: count, Gap: gap}
	}
	if o.landscape != nil && *o.landscape {
		config.Geometry.Orientation = model.OrientationLandscape
	}
	if o.headerContentHeight != nil {
		config.HeaderContentHeight = model.ClampNonNegative(*o.headerContentHeight)
	}
	if o.footerContentHeight != nil {
		config.FooterContentHeight = model.ClampNonNegative(*o.footerContentHeight)
	}
	if o.balancing != nil {
		config.Balancing = *o.balancing
	}
	if o.tables != nil {
		config.Tables = *o.tables
	}
	if o.balanceTolerance != nil {
		config.Balancing.Tolerance = model.ClampNonNegative(*o.balanceTolerance)
	}
	config.DisableBalancing = o.disableBalancing
	if o.maxPages > 0 {
		config.MaxPages = o.maxPages
	}
	config.BaseMargins = config.Geometry.Margins
	return config
}
