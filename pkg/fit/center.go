package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// Region describes the vertical space available to a media block between
// its neighbours.
type Region struct {
	// Height is the distance from the previous sibling's bottom (or the
	// content top) to the next sibling's top (or the content bottom).
	Height float64
	// Core is the block's own rendered height.
	Core float64
	// Extra is the free space: max(0, Height - Core).
	Extra float64
}

// MediaRegion measures the free space around block inside content. It
// returns false when either box has no height.
func MediaRegion(p measure.Port, content, block *deck.Node) (Region, bool) {
	if content == nil || block == nil {
		return Region{}, false
	}
	cb, bb := p.Box(content), p.Box(block)
	if cb.Height <= 0 || bb.Height <= 0 {
		return Region{}, false
	}

	top, bottom := cb.Top, cb.Bottom()
	if prev := block.PrevSibling(); prev != nil {
		top = p.Box(prev).Bottom()
	}
	if next := block.NextSibling(); next != nil {
		bottom = p.Box(next).Top
	}

	r := Region{Height: math.Max(0, bottom-top), Core: math.Max(0, bb.Height)}
	r.Extra = math.Max(0, r.Height-r.Core)
	return r, true
}

// loneMedia returns the single direct media child of content, if there is
// exactly one.
func loneMedia(content *deck.Node) *deck.Node {
	var found *deck.Node
	for _, c := range content.Children() {
		if !c.IsMedia() {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

// Spacing is the extra space written above and below a centered block.
type Spacing struct {
	Top, Bottom float64
}

// CenterIfLoneMedia splits the free space around content's only media block
// evenly above and below it, writing the halves to the given hints. Nothing
// is written when content has zero or several media blocks, or when the free
// space is below the configured minimum.
func (e *Engine) CenterIfLoneMedia(content *deck.Node, top, bottom measure.Hint) (Spacing, bool) {
	if content == nil {
		return Spacing{}, false
	}
	block := loneMedia(content)
	if block == nil {
		return Spacing{}, false
	}
	r, ok := MediaRegion(e.port, content, block)
	if !ok || r.Extra < e.params.Center.MinExtra {
		return Spacing{}, false
	}

	s := Spacing{Top: math.Floor(r.Extra / 2)}
	s.Bottom = r.Extra - s.Top
	e.port.SetHint(block, top, s.Top)
	e.port.SetHint(block, bottom, s.Bottom)
	return s, true
}
