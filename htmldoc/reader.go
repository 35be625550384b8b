package htmldoc

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	// Intrinsic image sizing for <img> elements without measured heights.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/pageflow/model"
	"github.com/tsawler/pageflow/pages"
	"github.com/tsawler/pageflow/yamldoc"
)

// Reader parses annotated HTML into a measured layout document. Paragraphs,
// tables, and images carry their measurements as data-* attributes; <hr>
// elements act as section-break markers; the <body> element carries the
// document-default geometry.
type Reader struct {
	doc     *yamldoc.Document
	baseDir string
	blocks  int
}

// Open opens an annotated HTML file for reading. Relative <img> sources
// resolve against the file's directory.
func Open(filename string) (*yamldoc.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := &Reader{baseDir: filepath.Dir(filename)}
	return r.parse(f)
}

// OpenReader parses annotated HTML from an io.Reader. Relative <img>
// sources resolve against the working directory.
func OpenReader(rd io.Reader) (*yamldoc.Document, error) {
	r := &Reader{}
	return r.parse(rd)
}

func (r *Reader) parse(rd io.Reader) (*yamldoc.Document, error) {
	root, err := html.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	r.doc = &yamldoc.Document{}
	if title := findElement(root, "title"); title != nil {
		r.doc.Title = normalizeText(getTextContent(title))
	}

	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	r.doc.Geometry = r.bodyGeometry(body)
	r.doc.HeaderContentHeight = attrFloat(body, "data-header-content-height", 0)
	r.doc.FooterContentHeight = attrFloat(body, "data-footer-content-height", 0)

	if err := r.traverse(body); err != nil {
		return nil, err
	}
	return r.doc, nil
}

// bodyGeometry reads the document-default geometry off the body element.
func (r *Reader) bodyGeometry(body *html.Node) model.SectionGeometry {
	geom := model.SectionGeometry{
		Margins:  model.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		PageSize: model.PageSize{Width: 612, Height: 792},
		Columns:  model.SingleColumn(),
	}
	geom.PageSize.Width = attrFloat(body, attrPageWidth, geom.PageSize.Width)
	geom.PageSize.Height = attrFloat(body, attrPageHeight, geom.PageSize.Height)
	geom.Margins.Top = attrFloat(body, attrMarginTop, geom.Margins.Top)
	geom.Margins.Bottom = attrFloat(body, attrMarginBottom, geom.Margins.Bottom)
	geom.Margins.Left = attrFloat(body, attrMarginLeft, geom.Margins.Left)
	geom.Margins.Right = attrFloat(body, attrMarginRight, geom.Margins.Right)
	geom.HeaderDistance = attrFloat(body, attrHeaderDistance, 0)
	geom.FooterDistance = attrFloat(body, attrFooterDistance, 0)
	if count := attrInt(body, attrColumns, 0); count > 0 {
		geom.Columns = model.ColumnSpec{Count: count, Gap: attrFloat(body, attrColumnGap, 0)}
	}
	if attrValue(body, attrOrientation) == "landscape" {
		geom.Orientation = model.OrientationLandscape
	}
	return geom
}

// traverse walks the body's element tree in document order.
func (r *Reader) traverse(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "hr":
			marker, err := r.parseMarker(c)
			if err != nil {
				return err
			}
			r.doc.Items = append(r.doc.Items, pages.MarkerItem(marker))
		case "p":
			r.doc.Items = append(r.doc.Items, pages.BlockItem(r.parseParagraph(c)))
		case "table":
			blk, err := r.parseTable(c)
			if err != nil {
				return err
			}
			r.doc.Items = append(r.doc.Items, pages.BlockItem(blk))
		case "img":
			r.doc.Items = append(r.doc.Items, pages.BlockItem(r.parseImage(c)))
		default:
			if err := r.traverse(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) parseMarker(n *html.Node) (model.SectionMarker, error) {
	marker := model.SectionMarker{
		FirstSection:        attrBool(n, attrFirst),
		RequirePageBoundary: attrBool(n, attrRequireBreak),
		BalanceColumns:      attrBoolPtr(n, attrBalance),
		Position:            r.position(n),
	}

	switch attrValue(n, attrBreak) {
	case "", "continuous":
		marker.Type = model.BreakContinuous
	case "next_page", "nextPage":
		marker.Type = model.BreakNextPage
	case "even_page", "evenPage":
		marker.Type = model.BreakEvenPage
	case "odd_page", "oddPage":
		marker.Type = model.BreakOddPage
	default:
		return marker, fmt.Errorf("unknown section break type %q", attrValue(n, attrBreak))
	}

	if count := attrInt(n, attrColumns, 0); count > 0 {
		c := model.ColumnSpec{Count: count, Gap: attrFloat(n, attrColumnGap, 0)}
		marker.Columns = &c
	}
	if hasAttr(n, attrMarginTop) || hasAttr(n, attrMarginBottom) || hasAttr(n, attrMarginLeft) || hasAttr(n, attrMarginRight) {
		m := model.Margins{
			Top:    attrFloat(n, attrMarginTop, 0),
			Bottom: attrFloat(n, attrMarginBottom, 0),
			Left:   attrFloat(n, attrMarginLeft, 0),
			Right:  attrFloat(n, attrMarginRight, 0),
		}
		marker.Margins = &m
	}
	if hasAttr(n, attrPageWidth) || hasAttr(n, attrPageHeight) {
		size := model.PageSize{
			Width:  attrFloat(n, attrPageWidth, 0),
			Height: attrFloat(n, attrPageHeight, 0),
		}
		marker.PageSize = &size
	}
	if hasAttr(n, attrOrientation) {
		o := model.OrientationPortrait
		if attrValue(n, attrOrientation) == "landscape" {
			o = model.OrientationLandscape
		}
		marker.Orientation = &o
	}
	marker.HeaderDistance = attrFloatPtr(n, attrHeaderDistance)
	marker.FooterDistance = attrFloatPtr(n, attrFooterDistance)
	return marker, nil
}

func (r *Reader) parseParagraph(n *html.Node) *model.Block {
	lines := attrLineList(n, attrLines)
	if len(lines) == 0 {
		// Uniform measurement: data-line-height x data-line-count.
		lh := attrFloat(n, attrLineHeight, 14)
		count := attrInt(n, attrLineCount, 1)
		for i := 0; i < count; i++ {
			lines = append(lines, lh)
		}
	}
	total := 0.0
	for _, lh := range lines {
		total += lh
	}

	r.blocks++
	return &model.Block{
		ID:          blockIDAttr(n, r.blocks),
		Type:        model.BlockTypeParagraph,
		Height:      total,
		LineHeights: lines,
		Constraints: model.BreakConstraints{
			CanBreak:     !attrBool(n, attrNoBreak),
			KeepWithNext: attrBool(n, attrKeepWithNext),
			KeepTogether: attrBool(n, attrKeepTogether),
			OrphanLines:  attrInt(n, attrOrphans, 0),
			WidowLines:   attrInt(n, attrWidows, 0),
		},
		Text:     normalizeText(getTextContent(n)),
		Position: r.position(n),
	}
}

func (r *Reader) parseTable(n *html.Node) (*model.Block, error) {
	t := &model.TableMeasure{
		HeaderRows:  attrInt(n, attrHeaderRows, 0),
		CellSpacing: attrFloat(n, attrCellSpacing, 0),
		Floating:    attrBool(n, attrFloating),
		Indent:      attrFloat(n, attrIndent, 0),
	}
	t.SeparateBorders = t.CellSpacing > 0

	var walkRows func(*html.Node) error
	walkRows = func(node *html.Node) error {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data != "tr" {
				if err := walkRows(c); err != nil {
					return err
				}
				continue
			}
			row := model.RowMeasure{
				Height:         attrFloat(c, attrHeight, 0),
				ExplicitHeight: attrFloat(c, attrExplicitHeight, 0),
				CantSplit:      attrBool(c, attrCantSplit),
			}
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
					continue
				}
				row.Cells = append(row.Cells, model.CellMeasure{
					LineHeights:   attrLineList(cell, attrLines),
					PaddingTop:    attrFloat(cell, attrPaddingTop, 0),
					PaddingBottom: attrFloat(cell, attrPaddingBottom, 0),
				})
			}
			if len(row.Cells) == 0 {
				return fmt.Errorf("table row has no cells")
			}
			if row.Height == 0 {
				for _, cell := range row.Cells {
					if h := cell.PaddingTop + cell.PaddingBottom + cell.ContentHeight(0, cell.LineCount()); h > row.Height {
						row.Height = h
					}
				}
			}
			t.Rows = append(t.Rows, row)
		}
		return nil
	}
	if err := walkRows(n); err != nil {
		return nil, err
	}
	if t.HeaderRows > len(t.Rows) {
		return nil, fmt.Errorf("table header rows %d outside measured rows %d", t.HeaderRows, len(t.Rows))
	}

	r.blocks++
	return &model.Block{
		ID:       blockIDAttr(n, r.blocks),
		Type:     model.BlockTypeTable,
		Height:   t.TotalHeight(),
		Table:    t,
		Position: r.position(n),
	}, nil
}

func (r *Reader) parseImage(n *html.Node) *model.Block {
	width := attrFloat(n, attrWidth, 0)
	height := attrFloat(n, attrHeight, 0)
	if height == 0 {
		// No measured height: fall back to the image's intrinsic size.
		if w, h, ok := r.intrinsicSize(attrValue(n, "src")); ok {
			if width == 0 {
				width = w
			}
			height = h
		}
	}

	r.blocks++
	return &model.Block{
		ID:     blockIDAttr(n, r.blocks),
		Type:   model.BlockTypeImage,
		Height: height,
		Image: &model.ImageMeasure{
			Width:  width,
			Height: height,
		},
		Position: r.position(n),
	}
}

// intrinsicSize probes an image file's dimensions without decoding pixels.
func (r *Reader) intrinsicSize(src string) (float64, float64, bool) {
	if src == "" {
		return 0, 0, false
	}
	path := src
	if r.baseDir != "" && !filepath.IsAbs(src) {
		path = filepath.Join(r.baseDir, src)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return float64(cfg.Width), float64(cfg.Height), true
}

func (r *Reader) position(n *html.Node) model.PositionRange {
	return model.PositionRange{
		Start: int64(attrInt(n, attrPosStart, 0)),
		End:   int64(attrInt(n, attrPosEnd, 0)),
	}
}

func blockIDAttr(n *html.Node, index int) string {
	if id := attrValue(n, "id"); id != "" {
		return id
	}
	return fmt.Sprintf("block-%d", index)
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getTextContent extracts all text within a node.
func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(getTextContent(c))
	}
	return sb.String()
}

// normalizeText collapses whitespace runs and NFC-normalizes ingested text.
func normalizeText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
