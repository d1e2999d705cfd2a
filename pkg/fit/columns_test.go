package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/slidefit/pkg/deck"
)

func figs(sizes ...[2]float64) []*deck.Node {
	out := make([]*deck.Node, len(sizes))
	for i, s := range sizes {
		out[i] = figure(s[0], s[1])
	}
	return out
}

func repeat(n int, s [2]float64) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestChooseColumns(t *testing.T) {
	var (
		square   = [2]float64{100, 100}
		portrait = [2]float64{50, 100}
		wide     = [2]float64{300, 100}
		unknown  = [2]float64{0, 0}
	)

	tests := []struct {
		name    string
		sizes   [][2]float64
		isTitle bool
		want    int
	}{
		{"single", [][2]float64{wide}, false, 1},
		{"empty", nil, false, 1},
		{"two tall", [][2]float64{portrait, portrait}, false, 1},
		{"two square", [][2]float64{square, square}, false, 2},
		{"three with two portrait", [][2]float64{portrait, portrait, wide}, false, 3},
		{"three with one portrait", [][2]float64{portrait, square, wide}, false, 2},
		{"four portrait", repeat(4, portrait), false, 2},
		{"four wide", repeat(4, wide), false, 2},
		{"five mostly wide", [][2]float64{wide, wide, wide, square, square}, false, 3},
		{"five mostly square", [][2]float64{wide, wide, square, square, square}, false, 2},
		{"six half wide", [][2]float64{wide, wide, wide, square, square, square}, false, 3},
		{"seven", repeat(7, portrait), false, 3},
		{"title slide caps at two", repeat(5, wide), true, 2},
		{"title slide pair", [][2]float64{portrait, portrait}, true, 2},
		{"unloaded pair", repeat(2, unknown), false, 2},
		{"unloaded three", repeat(3, unknown), false, 2},
		{"unloaded four", repeat(4, unknown), false, 2},
		{"unloaded nine", repeat(9, unknown), false, 3},
		{"unloaded twenty", repeat(20, unknown), false, 3},
		{"partially loaded pair counts unknown as square", [][2]float64{portrait, unknown}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseColumns(figs(tt.sizes...), tt.isTitle))
		})
	}
}
