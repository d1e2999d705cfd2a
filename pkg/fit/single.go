package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// FitSingle finds the largest image height cap at which a slide with one
// figure fits.
//
// The image starts at width auto (max 96%) with no height cap, which gives
// its natural rendered height. The initial cap is twice that height, bounded
// by 98% of the content height. If the slide overflows at the initial cap the
// cap is bisected down to the search floor, and the minimum padding guard
// then trades a little more height for breathing room around the figure.
func (e *Engine) FitSingle(figure, inner, content *deck.Node) SingleResult {
	img := figure.Image()
	if img == nil {
		return SingleResult{Fits: !e.overflow(inner, content, nil)}
	}
	sp := e.params.Single
	figs := []*deck.Node{figure}

	e.port.ClearHint(img, measure.HintWidthPct)
	e.port.ClearHint(img, measure.HintMaxHeight)
	e.port.SetHint(img, measure.HintMaxWidthPct, sp.MaxWidthPct)

	base := math.Floor(e.port.Box(img).Height)
	if base <= 0 {
		base = math.Floor(img.Natural.Height)
	}
	base = math.Max(1, base)

	viewportCap := math.Max(sp.ViewportFloor, math.Floor(e.port.ClientSize(content).Height*sp.ViewportFrac))
	maxH := math.Max(sp.CapFloor, math.Min(viewportCap, math.Floor(base*sp.Growth)))
	e.port.SetHint(img, measure.HintMaxHeight, maxH)

	if !e.overflow(inner, content, figs) {
		return SingleResult{MaxHeight: maxH, Fits: true}
	}

	low, high := sp.SearchFloor, maxH
	for i := 0; i < sp.Iterations; i++ {
		mid := (low + high) / 2
		e.port.SetHint(img, measure.HintMaxHeight, math.Floor(mid))
		if e.overflow(inner, content, figs) {
			high = mid
		} else {
			low = mid
		}
	}
	e.port.SetHint(img, measure.HintMaxHeight, math.Floor(low))

	e.ensureMinPadding(figure, img, inner, content)

	h, _ := e.port.Hint(img, measure.HintMaxHeight)
	return SingleResult{MaxHeight: h, Fits: !e.overflow(inner, content, figs), Searched: true}
}

// ensureMinPadding shrinks the image cap while the free space around the
// figure is below twice PadEach. It never goes under PadFloor and stops
// early once a shrink makes no progress.
func (e *Engine) ensureMinPadding(figure, img, inner, content *deck.Node) {
	sp := e.params.Single
	minTotal := sp.PadEach * 2
	figs := []*deck.Node{figure}

	for i := 0; i < sp.PadIterations; i++ {
		r, ok := MediaRegion(e.port, content, figure)
		if !ok || r.Extra >= minTotal-1 {
			return
		}
		current, ok := e.port.Hint(img, measure.HintMaxHeight)
		if !ok || current <= sp.PadFloor {
			return
		}
		shortage := minTotal - r.Extra
		next := math.Max(sp.PadFloor, math.Floor(current-math.Max(sp.PadMinStep, shortage/2)))
		if next >= current {
			return
		}
		e.port.SetHint(img, measure.HintMaxHeight, next)
		if e.overflow(inner, content, figs) {
			e.port.SetHint(img, measure.HintMaxHeight, math.Max(sp.PadFloor, next-sp.PadBackoff))
		}
	}
}
