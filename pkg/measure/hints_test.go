package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/slidefit/pkg/deck"
)

func TestHints(t *testing.T) {
	s := NewHints()
	a := &deck.Node{Kind: deck.KindFigure}
	b := &deck.Node{Kind: deck.KindImage}

	s.SetHint(a, HintScale, 0.5)
	s.SetHint(b, HintMaxHeight, 300)
	s.SetHint(b, HintPrintMaxHeight, 200)

	v, ok := s.Hint(a, HintScale)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	_, ok = s.Hint(a, HintMaxHeight)
	assert.False(t, ok, "never set")

	s.ClearAll(PrintHints...)
	_, ok = s.Hint(b, HintPrintMaxHeight)
	assert.False(t, ok, "print hint survived ClearAll")
	_, ok = s.Hint(b, HintMaxHeight)
	assert.True(t, ok, "screen hint removed by ClearAll")

	s.ClearHint(a, HintScale)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []Hint{HintMaxHeight}, Names(s.Of(b)))
}

func TestColumnsSurvivePrintCleanup(t *testing.T) {
	assert.Contains(t, ScreenHints, HintColumns)
	assert.NotContains(t, PrintHints, HintColumns)
}
