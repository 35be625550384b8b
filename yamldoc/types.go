// Package yamldoc reads measured layout documents from YAML.
package yamldoc

// rawDocument is the YAML shape of a layout document. Blocks arrive with
// their measurements already attached; this package only converts and
// validates them.
type rawDocument struct {
	Title    string       `yaml:"title"`
	Geometry *rawGeometry `yaml:"geometry"`

	HeaderContentHeight float64 `yaml:"header_content_height"`
	FooterContentHeight float64 `yaml:"footer_content_height"`

	Stream []rawItem `yaml:"stream"`
}

type rawGeometry struct {
	PageSize       *rawPageSize `yaml:"page_size"`
	Margins        *rawMargins  `yaml:"margins"`
	Columns        *rawColumns  `yaml:"columns"`
	Orientation    string       `yaml:"orientation"`
	HeaderDistance float64      `yaml:"header_distance"`
	FooterDistance float64      `yaml:"footer_distance"`
}

type rawPageSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type rawMargins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

type rawColumns struct {
	Count int     `yaml:"count"`
	Gap   float64 `yaml:"gap"`
}

// rawItem is one stream entry; exactly one field should be set.
type rawItem struct {
	Section   *rawSection   `yaml:"section"`
	Paragraph *rawParagraph `yaml:"paragraph"`
	Table     *rawTable     `yaml:"table"`
	Image     *rawImage     `yaml:"image"`
}

type rawSection struct {
	Type string `yaml:"type"`

	PageSize       *rawPageSize `yaml:"page_size"`
	Margins        *rawMargins  `yaml:"margins"`
	Columns        *rawColumns  `yaml:"columns"`
	Orientation    *string      `yaml:"orientation"`
	HeaderDistance *float64     `yaml:"header_distance"`
	FooterDistance *float64     `yaml:"footer_distance"`

	First               bool  `yaml:"first"`
	RequirePageBoundary bool  `yaml:"require_page_boundary"`
	Balance             *bool `yaml:"balance"`

	Position rawPosition `yaml:"position"`
}

type rawParagraph struct {
	ID           string    `yaml:"id"`
	Lines        []float64 `yaml:"lines"`
	CanBreak     *bool     `yaml:"can_break"`
	KeepWithNext bool      `yaml:"keep_with_next"`
	KeepTogether bool      `yaml:"keep_together"`
	Orphans      int       `yaml:"orphans"`
	Widows       int       `yaml:"widows"`

	Position rawPosition `yaml:"position"`
}

type rawTable struct {
	ID              string    `yaml:"id"`
	HeaderRows      int       `yaml:"header_rows"`
	SeparateBorders bool      `yaml:"separate_borders"`
	CellSpacing     float64   `yaml:"cell_spacing"`
	Floating        bool      `yaml:"floating"`
	Indent          float64   `yaml:"indent"`
	Rows            []rawRow  `yaml:"rows"`

	Position rawPosition `yaml:"position"`
}

type rawRow struct {
	Height         float64   `yaml:"height"`
	ExplicitHeight float64   `yaml:"explicit_height"`
	CantSplit      bool      `yaml:"cant_split"`
	Cells          []rawCell `yaml:"cells"`
}

type rawCell struct {
	Lines         []float64 `yaml:"lines"`
	PaddingTop    float64   `yaml:"padding_top"`
	PaddingBottom float64   `yaml:"padding_bottom"`
}

type rawImage struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Position rawPosition `yaml:"position"`
}

type rawPosition struct {
	Start int64 `yaml:"start"`
	End   int64 `yaml:"end"`
}
