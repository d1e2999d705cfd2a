package flow

import (
	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/geom"
)

// Default viewport and page sizes, in CSS pixels.
const (
	DefaultAspectRatio = "16:9"
	DefaultWidth       = 1280.0

	// A4 landscape at 96 dpi.
	DefaultPageWidth  = 1123.0
	DefaultPageHeight = 794.0
)

// ViewportFor returns the slide size for an aspect ratio such as "16:9" at
// the given width.
func ViewportFor(aspect string, width float64) (geom.Size, error) {
	w, h, err := errors.ParseAspectRatio(aspect)
	if err != nil {
		return geom.Size{}, err
	}
	if err := errors.ValidateDimension("width", width, 160, 16384); err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: width, Height: width * h / w}, nil
}

// Metrics are the box-model constants of the slide theme.
type Metrics struct {
	Padding      float64 `toml:"padding" json:"padding"`
	PrintPadding float64 `toml:"print_padding" json:"print_padding"`
	SlideGap     float64 `toml:"slide_gap" json:"slide_gap"`

	TitleSize    float64 `toml:"title_size" json:"title_size"`
	HeaderGap    float64 `toml:"header_gap" json:"header_gap"`
	FooterHeight float64 `toml:"footer_height" json:"footer_height"`
	FooterGap    float64 `toml:"footer_gap" json:"footer_gap"`

	BodySize    float64 `toml:"body_size" json:"body_size"`
	CodeSize    float64 `toml:"code_size" json:"code_size"`
	CaptionSize float64 `toml:"caption_size" json:"caption_size"`
	LineHeight  float64 `toml:"line_height" json:"line_height"`

	BlockGap       float64 `toml:"block_gap" json:"block_gap"`
	ItemGap        float64 `toml:"item_gap" json:"item_gap"`
	ListIndent     float64 `toml:"list_indent" json:"list_indent"`
	QuoteIndent    float64 `toml:"quote_indent" json:"quote_indent"`
	CodePadding    float64 `toml:"code_padding" json:"code_padding"`
	TableRowHeight float64 `toml:"table_row_height" json:"table_row_height"`
	MetaRowHeight  float64 `toml:"meta_row_height" json:"meta_row_height"`

	MediaPadding float64   `toml:"media_padding" json:"media_padding"`
	CaptionGap   float64   `toml:"caption_gap" json:"caption_gap"`
	GroupGap     float64   `toml:"group_gap" json:"group_gap"`
	Placeholder  geom.Size `toml:"placeholder" json:"placeholder"`
}

// DefaultMetrics returns the default theme.
func DefaultMetrics() Metrics {
	return Metrics{
		Padding:      48,
		PrintPadding: 32,
		SlideGap:     40,

		TitleSize:    40,
		HeaderGap:    16,
		FooterHeight: 24,
		FooterGap:    12,

		BodySize:    24,
		CodeSize:    18,
		CaptionSize: 16,
		LineHeight:  1.35,

		BlockGap:       16,
		ItemGap:        4,
		ListIndent:     28,
		QuoteIndent:    20,
		CodePadding:    12,
		TableRowHeight: 36,
		MetaRowHeight:  32,

		MediaPadding: 4,
		CaptionGap:   6,
		GroupGap:     12,
		Placeholder:  geom.Size{Width: 320, Height: 180},
	}
}

func (m Metrics) lineHeight(size float64) float64 {
	return size * m.LineHeight
}

var headingScale = map[int]float64{1: 1.6, 2: 1.4, 3: 1.2}

func (m Metrics) headingSize(level int) float64 {
	if s, ok := headingScale[level]; ok {
		return m.BodySize * s
	}
	return m.BodySize * 1.1
}
