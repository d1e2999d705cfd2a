package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// multiSlide builds a slide with fixed text above two 2:1 figures. At scale s
// the figures take 960*s pixels of a 1000x500 content box.
func multiSlide(p *fakePort, kind deck.SlideKind, fixed float64) (*deck.Slide, []*deck.Node) {
	a, b := figure(1000, 500), figure(1000, 500)
	s := p.add(newSlide(kind, p.text(fixed), a, b), 1000, 500)
	return s, []*deck.Node{a, b}
}

func TestFitMultipleKeepsFullScale(t *testing.T) {
	p := newFakePort()
	a, b := figure(1000, 100), figure(1000, 100)
	s := p.add(newSlide(deck.SlideContent, p.text(100), a, b), 1000, 500)

	r := New(p).FitMultiple([]*deck.Node{a, b}, s.Inner, s.Content, false)
	assert.Equal(t, FitResult{Scale: 1, Fits: true}, r)

	pct, _ := p.Hint(a.Image(), measure.HintWidthPct)
	assert.Equal(t, 96.0, pct)
}

func TestFitMultipleBisects(t *testing.T) {
	p := newFakePort()
	s, figs := multiSlide(p, deck.SlideContent, 100)

	r := New(p).FitMultiple(figs, s.Inner, s.Content, false)

	threshold := 402.0 / 960.0
	assert.True(t, r.Fits)
	assert.LessOrEqual(t, r.Scale, threshold)
	assert.InDelta(t, threshold, r.Scale, (1-0.4)/1024)
	assert.False(t, Overflows(p, s.Inner, s.Content, figs))

	for _, f := range figs {
		v, _ := p.Hint(f, measure.HintScale)
		assert.Equal(t, r.Scale, v)
	}
}

func TestFitMultipleStepsBelowFloor(t *testing.T) {
	p := newFakePort()
	s, figs := multiSlide(p, deck.SlideContent, 185)

	r := New(p).FitMultiple(figs, s.Inner, s.Content, false)
	assert.True(t, r.Fits)
	assert.InDelta(t, 0.3, r.Scale, 1e-9)
}

func TestFitMultipleTitleFloor(t *testing.T) {
	threshold := (502.0 - 147) / 960

	p := newFakePort()
	s, figs := multiSlide(p, deck.SlideTitle, 147)
	title := New(p).FitMultiple(figs, s.Inner, s.Content, true)
	assert.True(t, title.Fits)
	assert.InDelta(t, threshold, title.Scale, (1-0.35)/1024)

	p = newFakePort()
	s, figs = multiSlide(p, deck.SlideContent, 147)
	content := New(p).FitMultiple(figs, s.Inner, s.Content, false)
	assert.True(t, content.Fits)
	assert.InDelta(t, 0.35, content.Scale, 1e-9, "content slides step down from 0.4")
}

func TestFitMultipleFloorAcceptance(t *testing.T) {
	p := newFakePort()
	s, figs := multiSlide(p, deck.SlideContent, 600)

	r := New(p).FitMultiple(figs, s.Inner, s.Content, false)

	assert.False(t, r.Fits)
	assert.Equal(t, 0.2, r.Scale)
	assert.True(t, Overflows(p, s.Inner, s.Content, figs))
	for _, f := range figs {
		v, _ := p.Hint(f, measure.HintScale)
		assert.Equal(t, 0.2, v)
		pct, _ := p.Hint(f.Image(), measure.HintWidthPct)
		assert.InDelta(t, 19.2, pct, 1e-9)
	}
}
