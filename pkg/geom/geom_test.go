package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxEdges(t *testing.T) {
	b := Box{Left: 10, Top: 20, Width: 30, Height: 40}
	assert.Equal(t, 40.0, b.Right())
	assert.Equal(t, 60.0, b.Bottom())
	assert.False(t, b.Empty())
	assert.True(t, Box{Width: 10}.Empty())
}

func TestBoxContains(t *testing.T) {
	outer := Box{Left: 0, Top: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		inner Box
		tol   float64
		want  bool
	}{
		{"inside", Box{10, 10, 50, 50}, 0, true},
		{"flush", Box{0, 0, 100, 100}, 0, true},
		{"past bottom", Box{0, 0, 100, 101.5}, 0, false},
		{"past bottom within tolerance", Box{0, 0, 100, 101.5}, 2, true},
		{"past left beyond tolerance", Box{-3, 0, 10, 10}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outer.Contains(tt.inner, tt.tol))
		})
	}
}

func TestSizeAspect(t *testing.T) {
	assert.InDelta(t, 16.0/9.0, Size{1600, 900}.Aspect(), 1e-12)
	assert.Equal(t, 50.0, Size{50, 0}.Aspect(), "height is floored at 1")
	assert.Equal(t, 0.0, Size{}.Aspect())
}
