// Package htmldoc reads measured layout documents from annotated HTML.
package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pageflow/model"
)

// Attribute names the reader understands. Measurements arrive as data-*
// attributes; the HTML structure only supplies ordering and text.
const (
	attrLines          = "data-lines"
	attrLineHeight     = "data-line-height"
	attrLineCount      = "data-line-count"
	attrHeight         = "data-height"
	attrWidth          = "data-width"
	attrOrphans        = "data-orphans"
	attrWidows         = "data-widows"
	attrKeepWithNext   = "data-keep-with-next"
	attrKeepTogether   = "data-keep-together"
	attrNoBreak        = "data-no-break"
	attrCantSplit      = "data-cant-split"
	attrExplicitHeight = "data-explicit-height"
	attrPaddingTop     = "data-padding-top"
	attrPaddingBottom  = "data-padding-bottom"
	attrHeaderRows     = "data-header-rows"
	attrCellSpacing    = "data-cell-spacing"
	attrFloating       = "data-floating"
	attrIndent         = "data-indent"
	attrBreak          = "data-break"
	attrColumns        = "data-columns"
	attrColumnGap      = "data-column-gap"
	attrMarginTop      = "data-margin-top"
	attrMarginBottom   = "data-margin-bottom"
	attrMarginLeft     = "data-margin-left"
	attrMarginRight    = "data-margin-right"
	attrPageWidth      = "data-page-width"
	attrPageHeight     = "data-page-height"
	attrOrientation    = "data-orientation"
	attrHeaderDistance = "data-header-distance"
	attrFooterDistance = "data-footer-distance"
	attrFirst          = "data-first"
	attrRequireBreak   = "data-require-page-boundary"
	attrBalance        = "data-balance"
	attrPosStart       = "data-pos-start"
	attrPosEnd         = "data-pos-end"
)

// attrValue returns the value of an attribute, "" when absent.
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasAttr reports whether the attribute is present at all.
func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// attrFloat parses a numeric attribute, clamping malformed values to the
// fallback.
func attrFloat(n *html.Node, key string, fallback float64) float64 {
	s := attrValue(n, key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return model.ClampNonNegative(v)
}

// attrFloatPtr parses a numeric attribute into an optional value.
func attrFloatPtr(n *html.Node, key string) *float64 {
	if !hasAttr(n, key) {
		return nil
	}
	v := attrFloat(n, key, 0)
	return &v
}

// attrInt parses an integer attribute, with fallback on malformed input.
func attrInt(n *html.Node, key string, fallback int) int {
	s := attrValue(n, key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// attrBool treats a present attribute as true unless it says "false" or "0".
func attrBool(n *html.Node, key string) bool {
	if !hasAttr(n, key) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(attrValue(n, key))) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}

// attrBoolPtr parses a tri-state boolean attribute.
func attrBoolPtr(n *html.Node, key string) *bool {
	if !hasAttr(n, key) {
		return nil
	}
	v := attrBool(n, key)
	return &v
}

// attrLineList parses a whitespace- or comma-separated list of line
// heights. Malformed entries are clamped to zero.
func attrLineList(n *html.Node, key string) []float64 {
	s := attrValue(n, key)
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	lines := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			v = 0
		}
		lines = append(lines, model.ClampNonNegative(v))
	}
	return lines
}
