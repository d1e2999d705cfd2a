package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

func TestFitSingleKeepsNaturalSizeWhenItFits(t *testing.T) {
	p := newFakePort()
	fig := figure(200, 100)
	s := p.add(newSlide(deck.SlideContent, p.text(100), fig), 1000, 500)

	r := New(p).FitSingle(fig, s.Inner, s.Content)

	assert.True(t, r.Fits)
	assert.False(t, r.Searched)
	assert.Equal(t, 200.0, r.MaxHeight, "cap is twice the natural height")
	assert.Equal(t, 100.0, p.Box(fig.Image()).Height, "no shrink applied")
	assert.False(t, Overflows(p, s.Inner, s.Content, []*deck.Node{fig}))

	pct, ok := p.Hint(fig.Image(), measure.HintMaxWidthPct)
	require.True(t, ok)
	assert.Equal(t, 96.0, pct)
}

func TestFitSingleBisectionConverges(t *testing.T) {
	p := newFakePort()
	fig := figure(800, 600)
	s := p.add(newSlide(deck.SlideContent, p.text(100), fig), 1000, 500)

	params := DefaultParams()
	params.Single.PadIterations = 0
	r := New(p, WithParams(params)).FitSingle(fig, s.Inner, s.Content)

	require.True(t, r.Searched)
	assert.True(t, r.Fits)
	assert.Equal(t, 402.0, r.MaxHeight, "largest whole-pixel cap within tolerance")

	figs := []*deck.Node{fig}
	assert.False(t, Overflows(p, s.Inner, s.Content, figs))
	p.SetHint(fig.Image(), measure.HintMaxHeight, r.MaxHeight+1)
	assert.True(t, Overflows(p, s.Inner, s.Content, figs), "one pixel more must overflow")
}

func TestFitSingleMinimumPadding(t *testing.T) {
	p := newFakePort()
	fig := figure(800, 600)
	s := p.add(newSlide(deck.SlideContent, p.text(100), fig), 1000, 500)

	r := New(p).FitSingle(fig, s.Inner, s.Content)

	require.True(t, r.Searched)
	assert.True(t, r.Fits)
	assert.Equal(t, 362.0, r.MaxHeight)

	region, ok := MediaRegion(p, s.Content, fig)
	require.True(t, ok)
	assert.GreaterOrEqual(t, region.Extra, 35.0)
}

func TestFitSingleGuardLeavesSmallCapsAlone(t *testing.T) {
	p := newFakePort()
	fig := figure(800, 600)
	s := p.add(newSlide(deck.SlideContent, p.text(50), fig), 1000, 100)

	r := New(p).FitSingle(fig, s.Inner, s.Content)

	assert.True(t, r.Fits)
	assert.Equal(t, 52.0, r.MaxHeight)
}

func TestFitSingleWithoutImage(t *testing.T) {
	p := newFakePort()
	fig := deck.NewNode(deck.KindFigure)
	s := p.add(newSlide(deck.SlideContent, fig), 1000, 500)

	r := New(p).FitSingle(fig, s.Inner, s.Content)
	assert.True(t, r.Fits)
	assert.Zero(t, p.Len(), "no hints written")
}
