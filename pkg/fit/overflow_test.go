package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// stubPort returns canned geometry.
type stubPort struct {
	*measure.Hints
	boxes  map[*deck.Node]geom.Box
	client map[*deck.Node]geom.Size
	scroll map[*deck.Node]geom.Size
}

func (s stubPort) Box(n *deck.Node) geom.Box         { return s.boxes[n] }
func (s stubPort) ClientSize(n *deck.Node) geom.Size { return s.client[n] }
func (s stubPort) ScrollSize(n *deck.Node) geom.Size { return s.scroll[n] }

func TestOverflows(t *testing.T) {
	inner := &deck.Node{Kind: deck.KindInner}
	content := &deck.Node{Kind: deck.KindContent}
	fig := &deck.Node{Kind: deck.KindFigure}
	contentBox := geom.Box{Left: 0, Top: 0, Width: 800, Height: 400}
	fits := geom.Size{Width: 800, Height: 400}

	tests := []struct {
		name    string
		inner   geom.Size
		content geom.Size
		figure  geom.Box
		want    bool
	}{
		{"fits", fits, fits, geom.Box{Top: 10, Width: 400, Height: 300}, false},
		{"content scrolls vertically", fits, geom.Size{Width: 800, Height: 403}, geom.Box{}, true},
		{"content within tolerance", fits, geom.Size{Width: 800, Height: 402}, geom.Box{}, false},
		{"inner scrolls horizontally", geom.Size{Width: 803, Height: 400}, fits, geom.Box{}, true},
		{"figure past bottom", fits, fits, geom.Box{Top: 200, Width: 400, Height: 203}, true},
		{"figure past bottom within tolerance", fits, fits, geom.Box{Top: 200, Width: 400, Height: 202}, false},
		{"figure past left", fits, fits, geom.Box{Left: -3, Width: 10, Height: 10}, true},
		{"empty figure ignored", fits, fits, geom.Box{Left: -500, Top: -500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := stubPort{
				Hints:  measure.NewHints(),
				boxes:  map[*deck.Node]geom.Box{content: contentBox, fig: tt.figure},
				client: map[*deck.Node]geom.Size{inner: fits, content: fits},
				scroll: map[*deck.Node]geom.Size{inner: tt.inner, content: tt.content},
			}
			assert.Equal(t, tt.want, Overflows(p, inner, content, []*deck.Node{fig}))
		})
	}
}

func TestOverflowsWithoutFigures(t *testing.T) {
	inner := &deck.Node{Kind: deck.KindInner}
	content := &deck.Node{Kind: deck.KindContent}
	size := geom.Size{Width: 100, Height: 100}
	p := stubPort{
		Hints:  measure.NewHints(),
		client: map[*deck.Node]geom.Size{inner: size, content: size},
		scroll: map[*deck.Node]geom.Size{inner: size, content: size},
	}
	assert.False(t, Overflows(p, inner, content, nil))
}
