package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// parse builds a deck and gives every image the natural size w x h.
func parse(t *testing.T, md string, w, h float64) *deck.Deck {
	t.Helper()
	d, err := deck.Parse([]byte(md))
	require.NoError(t, err)
	for _, s := range d.Slides {
		for _, f := range s.Figures() {
			f.Image().Natural = geom.Size{Width: w, Height: h}
		}
	}
	return d
}

func TestViewportFor(t *testing.T) {
	vp, err := ViewportFor("16:9", 1280)
	require.NoError(t, err)
	assert.Equal(t, geom.Size{Width: 1280, Height: 720}, vp)

	vp, err = ViewportFor("4:3", 1024)
	require.NoError(t, err)
	assert.Equal(t, 768.0, vp.Height)

	_, err = ViewportFor("wide", 1280)
	assert.Error(t, err)
	_, err = ViewportFor("16:9", 10)
	assert.Error(t, err)
}

func TestSlideSkeleton(t *testing.T) {
	d := parse(t, "## Hello\n\nsome text\n\n## Second\n\nmore", 0, 0)
	h := New(d.Slides)

	s := d.Slides[0]
	assert.Equal(t, geom.Box{Left: 48, Top: 48, Width: 1184, Height: 624}, h.Box(s.Inner))
	assert.Equal(t, 54.0, h.Box(s.Header).Height)
	assert.Equal(t, geom.Box{Left: 48, Top: 118, Width: 1184, Height: 518}, h.Box(s.Content))
	assert.Equal(t, geom.Size{Width: 1184, Height: 518}, h.ClientSize(s.Content))
	assert.Equal(t, h.ClientSize(s.Content), h.ScrollSize(s.Content))

	second := d.Slides[1]
	assert.Equal(t, 808.0, h.Box(second.Inner).Top)
}

func TestUnknownNodeIsZero(t *testing.T) {
	h := New(nil)
	n := deck.NewNode(deck.KindParagraph)
	assert.Equal(t, geom.Box{}, h.Box(n))
	assert.Equal(t, geom.Size{}, h.ScrollSize(n))
}

func TestFigureSizing(t *testing.T) {
	d := parse(t, "## One\n\n![](a.png)\n", 400, 300)
	h := New(d.Slides)
	s := d.Slides[0]
	fig := s.Content.Children()[0]
	require.Equal(t, deck.KindFigure, fig.Kind)
	img := fig.Image()

	assert.Equal(t, geom.Box{Left: 440, Top: 122, Width: 400, Height: 300}, h.Box(img))
	assert.Equal(t, 308.0, h.Box(fig).Height)

	h.SetHint(img, measure.HintWidthPct, 50)
	assert.Equal(t, geom.Size{Width: 592, Height: 444}, h.Box(img).Size())

	h.ClearHint(img, measure.HintWidthPct)
	h.SetHint(img, measure.HintMaxHeight, 150)
	assert.Equal(t, geom.Size{Width: 200, Height: 150}, h.Box(img).Size())
}

func TestUnloadedImageUsesPlaceholder(t *testing.T) {
	d := parse(t, "## One\n\n![](missing.png)\n", 0, 0)
	h := New(d.Slides)
	img := d.Slides[0].Figures()[0].Image()
	assert.Equal(t, DefaultMetrics().Placeholder, h.Box(img).Size())
}

func TestContentOverflow(t *testing.T) {
	d := parse(t, "## Tall\n\n![](a.png)\n", 400, 1200)
	h := New(d.Slides)
	s := d.Slides[0]
	assert.Equal(t, 518.0, h.ClientSize(s.Content).Height)
	assert.Equal(t, 1208.0, h.ScrollSize(s.Content).Height)

	snap := h.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 690.0, snap[0].Overflow)
	assert.False(t, snap[0].Figures[0].InBounds)
}

func TestSpacingHintsAreMargins(t *testing.T) {
	d := parse(t, "## One\n\n![](a.png)\n", 400, 300)
	h := New(d.Slides)
	fig := d.Slides[0].Figures()[0]

	h.SetHint(fig, measure.HintSpaceTop, 20)
	h.SetHint(fig, measure.HintSpaceBottom, 190)
	assert.Equal(t, 138.0, h.Box(fig).Top)
	assert.Equal(t, 308.0, h.Box(fig).Height)
	assert.Equal(t, 518.0, h.ScrollSize(d.Slides[0].Content).Height)

	h.SetHint(fig, measure.HintSpaceBottom, 200)
	assert.Equal(t, 528.0, h.ScrollSize(d.Slides[0].Content).Height)
}

func TestGroupColumns(t *testing.T) {
	d := parse(t, "## G\n\n![](a.png) ![](b.png) ![](c.png) ![](d.png)\n", 100, 100)
	h := New(d.Slides)
	group := d.Slides[0].Content.Children()[0]
	require.Equal(t, deck.KindFigureGroup, group.Kind)

	assert.Equal(t, 236.0, h.Box(group).Height)
	figs := group.Children()
	assert.Equal(t, h.Box(figs[0]).Top, h.Box(figs[1]).Top)
	assert.Greater(t, h.Box(figs[2]).Top, h.Box(figs[0]).Top)

	h.SetHint(group, measure.HintColumns, 4)
	assert.Equal(t, 116.0, h.Box(group).Height)
	assert.Equal(t, h.Box(figs[0]).Top, h.Box(figs[3]).Top)

	snap := h.Snapshot()
	require.Len(t, snap[0].Groups, 1)
	assert.Equal(t, 4, snap[0].Groups[0].Columns)
}

func TestPrintFlow(t *testing.T) {
	d := parse(t, "## One\n\n![](a.png)\n", 400, 300)
	h := New(d.Slides)
	s := d.Slides[0]
	fig := s.Figures()[0]
	img := fig.Image()
	h.SetHint(img, measure.HintWidthPct, 50)

	h.EnterPrint()
	assert.True(t, h.Printing())
	assert.Equal(t, geom.Size{Width: DefaultPageWidth, Height: DefaultPageHeight}, h.Viewport())
	assert.Equal(t, geom.Box{Left: 32, Top: 102, Width: 1059, Height: 624}, h.Box(s.Content))
	assert.Equal(t, geom.Size{Width: 400, Height: 300}, h.Box(img).Size(), "screen hints are ignored")

	h.SetHint(fig, measure.HintPrintScale, 0.5)
	assert.Equal(t, geom.Size{Width: 200, Height: 150}, h.Box(img).Size())

	h.SetHint(s.Content, measure.HintHideMedia, 1)
	assert.Equal(t, geom.Box{}, h.Box(fig))
	assert.Equal(t, 624.0, h.ScrollSize(s.Content).Height)

	h.ExitPrint()
	assert.Equal(t, geom.Size{Width: 592, Height: 444}, h.Box(img).Size())
}

func TestLayoutIsLazy(t *testing.T) {
	d := parse(t, "## A\n\n![](a.png)\n\n## B\n\ntext", 400, 300)
	h := New(d.Slides)
	a, b := d.Slides[0], d.Slides[1]

	h.Box(a.Content)
	h.Box(a.Inner)
	assert.Equal(t, 1, h.Layouts())

	img := a.Figures()[0].Image()
	h.SetHint(img, measure.HintMaxHeight, 100)
	h.Box(b.Content)
	assert.Equal(t, 2, h.Layouts(), "hint on A does not relayout B")

	h.SetHint(img, measure.HintMaxHeight, 100)
	h.Box(a.Content)
	assert.Equal(t, 3, h.Layouts())
	h.Box(a.Content)
	assert.Equal(t, 3, h.Layouts(), "rewriting the same value is free")

	h.ClearHint(img, measure.HintScale)
	h.Box(a.Content)
	assert.Equal(t, 3, h.Layouts())
}

func TestTitleSlideMeta(t *testing.T) {
	d := parse(t, "# Deck\n- author: Ada\n- date: today\n\nHello\n", 0, 0)
	h := New(d.Slides)
	meta := d.Slides[0].Content.Children()[0]
	require.Equal(t, deck.KindTitleMeta, meta.Kind)
	assert.Equal(t, 2*32.0+16, h.Box(meta).Height)

	snap := h.Snapshot()
	assert.Equal(t, "title", snap[0].Kind)
	assert.Equal(t, "title-meta", snap[0].Blocks[0].Kind)
}
