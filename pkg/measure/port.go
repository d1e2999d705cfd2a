// Package measure defines the boundary between the fitting engine and the
// rendering host.
//
// The engine never computes layout itself. It reads live geometry through a
// [Port] and writes style hints back through the same port; the host applies
// the hints to its rendered nodes and re-flows them before the next read.
package measure

import (
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
)

// Hint names a style variable the engine may set on a node.
type Hint string

// Screen hints.
const (
	// HintScale is the uniform figure scale in [0.2, 1], set on figures.
	HintScale Hint = "figure-scale"
	// HintWidthPct is the image width as a percentage of its box, set on images.
	HintWidthPct Hint = "image-width-pct"
	// HintMaxWidthPct caps the image width as a percentage of its box.
	HintMaxWidthPct Hint = "image-max-width-pct"
	// HintMaxHeight caps the rendered image height in pixels.
	HintMaxHeight Hint = "image-max-height"
	// HintSpaceTop and HintSpaceBottom add spacing around a media block.
	HintSpaceTop    Hint = "media-space-top"
	HintSpaceBottom Hint = "media-space-bottom"
	// HintColumns is the column count of a figure group.
	HintColumns Hint = "figure-group-cols"
)

// Print hints. They only take effect while the host is in print mode.
const (
	HintPrintScale       Hint = "print-figure-scale"
	HintPrintMaxHeight   Hint = "print-image-max-height"
	HintPrintSpaceTop    Hint = "print-media-space-top"
	HintPrintSpaceBottom Hint = "print-media-space-bottom"
	// HintHideMedia, set on a content node, removes media from its flow so
	// the height of the fixed content can be measured.
	HintHideMedia Hint = "print-hide-media"
)

// ScreenHints lists every hint a screen pass owns.
var ScreenHints = []Hint{
	HintScale, HintWidthPct, HintMaxWidthPct, HintMaxHeight,
	HintSpaceTop, HintSpaceBottom, HintColumns,
}

// PrintHints lists every hint a print pass owns.
var PrintHints = []Hint{
	HintPrintScale, HintPrintMaxHeight, HintPrintSpaceTop,
	HintPrintSpaceBottom, HintHideMedia,
}

// Port queries the geometry of rendered nodes and writes style hints.
//
// Every read must reflect all hint writes made before it. Reads on a node
// that is not rendered return zero values.
type Port interface {
	// Box returns the node's border box in page coordinates.
	Box(n *deck.Node) geom.Box
	// ClientSize returns the visible inner size of a container.
	ClientSize(n *deck.Node) geom.Size
	// ScrollSize returns the full size of a container's content.
	ScrollSize(n *deck.Node) geom.Size

	Hint(n *deck.Node, h Hint) (float64, bool)
	SetHint(n *deck.Node, h Hint, v float64)
	ClearHint(n *deck.Node, h Hint)
}

// PrintHost is a host that can switch into its print flow model.
type PrintHost interface {
	EnterPrint()
	ExitPrint()
}
