package fit

import (
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// DefaultOverflowTolerance is the slack used by [Overflows].
const DefaultOverflowTolerance = 2

// Overflows reports whether a slide's content does not fit: the container
// or the content scrolls in either axis, or a figure's box leaves the
// content box. Figures with an empty box are ignored.
func Overflows(p measure.Port, container, content *deck.Node, figures []*deck.Node) bool {
	return overflows(p, DefaultOverflowTolerance, container, content, figures)
}

func overflows(p measure.Port, tol float64, container, content *deck.Node, figures []*deck.Node) bool {
	if scrolls(p, container, tol) || scrolls(p, content, tol) {
		return true
	}
	if len(figures) == 0 {
		return false
	}
	bounds := p.Box(content)
	for _, f := range figures {
		b := p.Box(f)
		if b.Empty() {
			continue
		}
		if !bounds.Contains(b, tol) {
			return true
		}
	}
	return false
}

// scrolls reports whether n's scroll extent exceeds its client extent by
// more than tol in either axis.
func scrolls(p measure.Port, n *deck.Node, tol float64) bool {
	if n == nil {
		return false
	}
	client, scroll := p.ClientSize(n), p.ScrollSize(n)
	return scroll.Height > client.Height+tol || scroll.Width > client.Width+tol
}
