package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// FitMultiple finds the largest uniform scale in [floor, 1] at which all
// figures on a slide fit. The floor is lower on title slides.
//
// A slide that fits at scale 1 keeps it. If it still overflows at the floor,
// the scale is stepped down towards the hard floor and the first fitting
// step wins; otherwise it stays pinned at the hard floor.
func (e *Engine) FitMultiple(figures []*deck.Node, inner, content *deck.Node, isTitle bool) FitResult {
	mp := e.params.Multi
	floor := mp.Floor
	if isTitle {
		floor = mp.TitleFloor
	}

	e.applyScale(figures, 1)
	if !e.overflow(inner, content, figures) {
		return FitResult{Scale: 1, Fits: true}
	}

	e.applyScale(figures, floor)
	if e.overflow(inner, content, figures) {
		steps := int(math.Round((floor - mp.HardFloor) / mp.Step))
		s := floor
		for i := 0; i <= steps; i++ {
			s = floor - float64(i)*mp.Step
			if i == steps {
				s = mp.HardFloor
			}
			e.applyScale(figures, s)
			if !e.overflow(inner, content, figures) {
				return FitResult{Scale: s, Fits: true}
			}
		}
		return FitResult{Scale: s, Fits: false}
	}

	low, high := floor, 1.0
	for i := 0; i < mp.Iterations; i++ {
		mid := (low + high) / 2
		e.applyScale(figures, mid)
		if e.overflow(inner, content, figures) {
			high = mid
		} else {
			low = mid
		}
	}
	e.applyScale(figures, low)
	return FitResult{Scale: low, Fits: true}
}

// applyScale writes the figure scale and the derived image width.
func (e *Engine) applyScale(figures []*deck.Node, s float64) {
	mp := e.params.Multi
	pct := clamp(mp.MaxWidthPct*s, mp.MinWidthPct, mp.MaxWidthPct)
	for _, f := range figures {
		img := f.Image()
		if img == nil {
			continue
		}
		e.port.SetHint(f, measure.HintScale, s)
		e.port.SetHint(img, measure.HintWidthPct, pct)
	}
}
