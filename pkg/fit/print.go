package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// EstimatePrintScale returns the first guess for a print scale: the ratio
// of space left after fixed content to the media height at scale 1, clamped
// to [lo, hi].
func EstimatePrintScale(available, fixed, totalAtScale1, lo, hi float64) float64 {
	media := math.Max(1, totalAtScale1-fixed)
	return clamp((available-fixed)/media, lo, hi)
}

// FitForPrint fits one slide onto its print page. The host must already be
// in print mode.
//
// Fixed content is measured by hiding media. If it alone overflows the page
// the slide is left at scale 1. A lone figure on a page that is mostly free
// gets a height cap instead of a scale; everything else gets an estimated
// scale refined by bisection.
func (e *Engine) FitForPrint(slide *deck.Slide) PrintResult {
	content := slide.Content
	if content == nil {
		return PrintResult{Outcome: Skipped}
	}
	// Groups get the same columns as on screen.
	cols := e.chooseGroupColumns(slide)
	r := e.fitPage(slide, content)
	r.Columns = cols
	return r
}

func (e *Engine) fitPage(slide *deck.Slide, content *deck.Node) PrintResult {
	pp := e.params.Print
	figures := content.Figures()
	if len(figures) == 0 {
		return PrintResult{Outcome: NoMedia}
	}

	e.clearPrintHints(slide)
	e.setPrintScale(figures, 1)

	total := e.port.ScrollSize(content).Height
	available := e.port.ClientSize(content).Height
	if available <= 0 {
		return PrintResult{Outcome: Skipped, Scale: 1}
	}

	e.port.SetHint(content, measure.HintHideMedia, 1)
	fixed := e.port.ScrollSize(content).Height
	e.port.ClearHint(content, measure.HintHideMedia)

	if fixed-available > pp.FixedSlack {
		e.setPrintScale(figures, 1)
		return PrintResult{Outcome: FixedContentOverflow, Scale: 1}
	}

	if len(figures) == 1 && fixed/available < pp.SingleRatio {
		if img := figures[0].Image(); img != nil {
			return e.fitPrintSingle(content, img, available, fixed)
		}
	}

	target := EstimatePrintScale(available, fixed, total, pp.MinScale, pp.MaxScale)
	e.setPrintScale(figures, target)

	var low, high float64
	if e.pageFits(content) {
		low, high = target, pp.MaxScale
	} else {
		low, high = pp.MinScale, target
		e.setPrintScale(figures, low)
		if !e.pageFits(content) {
			return PrintResult{Outcome: FloorAccepted, Scale: low}
		}
	}

	for i := 0; i < pp.Iterations; i++ {
		mid := (low + high) / 2
		e.setPrintScale(figures, mid)
		if e.pageFits(content) {
			low = mid
		} else {
			high = mid
		}
	}
	e.setPrintScale(figures, low)
	e.CenterIfLoneMedia(content, measure.HintPrintSpaceTop, measure.HintPrintSpaceBottom)
	return PrintResult{Outcome: Converged, Scale: low}
}

func (e *Engine) fitPrintSingle(content, img *deck.Node, available, fixed float64) PrintResult {
	pp := e.params.Print
	base := math.Max(1, math.Floor(e.port.Box(img).Height))
	capH := math.Max(pp.CapFloor, math.Min(math.Floor((available-fixed)*pp.CapFrac), math.Floor(base*pp.Growth)))
	e.port.SetHint(img, measure.HintPrintMaxHeight, capH)

	for i := 0; i < pp.ShrinkIterations && !e.pageFits(content); i++ {
		capH = math.Max(pp.ShrinkFloor, math.Floor(capH*pp.Shrink))
		e.port.SetHint(img, measure.HintPrintMaxHeight, capH)
	}
	fits := e.pageFits(content)
	e.CenterIfLoneMedia(content, measure.HintPrintSpaceTop, measure.HintPrintSpaceBottom)
	return PrintResult{Outcome: outcomeOf(fits), Scale: 1, MaxHeight: capH}
}

// pageFits reports whether content fits its page, using the tighter print
// tolerance and ignoring figure geometry.
func (e *Engine) pageFits(content *deck.Node) bool {
	return !scrolls(e.port, content, e.params.Print.Tolerance)
}

func (e *Engine) setPrintScale(figures []*deck.Node, s float64) {
	for _, f := range figures {
		e.port.SetHint(f, measure.HintPrintScale, s)
	}
}

func (e *Engine) clearPrintHints(slide *deck.Slide) {
	clearHints(e.port, slide.Inner, measure.PrintHints)
}
