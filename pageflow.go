// Package pageflow provides a fluent API for paginating pre-measured
// documents: assigning blocks to pages, columns, and coordinates without
// performing any text measurement itself.
//
// Basic usage:
//
//	result, warnings, err := pageflow.FromYAML("document.yaml").Paginate()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pageflow.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := pageflow.FromYAML("report.yaml").
//	    PageSize(595, 842).
//	    Margins(54, 54, 54, 54).
//	    Columns(2, 18).
//	    Paginate()
//
// For advanced use cases, the lower-level pages package is also available.
package pageflow

import (
	"github.com/tsawler/pageflow/yamldoc"
)

// FromYAML opens a YAML layout document and returns a Paginator for fluent
// configuration. The file is read lazily, when a terminal operation such as
// Paginate() runs.
//
// Example:
//
//	result, warnings, err := pageflow.FromYAML("document.yaml").Paginate()
func FromYAML(filename string) *Paginator {
	return &Paginator{
		filename: filename,
		format:   sourceYAML,
		options:  defaultOptions(),
	}
}

// FromHTML opens an annotated HTML layout document and returns a Paginator
// for fluent configuration.
//
// Example:
//
//	result, warnings, err := pageflow.FromHTML("document.html").Paginate()
func FromHTML(filename string) *Paginator {
	return &Paginator{
		filename: filename,
		format:   sourceHTML,
		options:  defaultOptions(),
	}
}

// FromDocument creates a Paginator from an already-parsed layout document.
// This is useful when the document was built programmatically or read
// through the yamldoc or htmldoc packages directly.
//
// Example:
//
//	doc, err := yamldoc.Open("document.yaml")
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := pageflow.FromDocument(doc).Paginate()
func FromDocument(doc *yamldoc.Document) *Paginator {
	return &Paginator{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pageflow.Must(pageflow.FromYAML("document.yaml").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a call to Paginate() or Fragments()
// and panics if the error is non-nil. It discards warnings and returns
// just the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	result := pageflow.MustResult(pageflow.FromYAML("document.yaml").Paginate())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
