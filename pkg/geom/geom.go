// Package geom holds the rectangle and size types shared by the measurement
// port, the fitting engine and the layout host.
package geom

import "math"

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether either dimension is missing.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Aspect returns width divided by max(1, height).
func (s Size) Aspect() float64 {
	return s.Width / math.Max(1, s.Height)
}

// Box is an axis-aligned rectangle in CSS pixels. The origin is top-left.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Size returns the box dimensions.
func (b Box) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	return Box{Left: b.Left - d, Top: b.Top - d, Width: b.Width + 2*d, Height: b.Height + 2*d}
}

// Contains reports whether o lies inside b grown by tol on every side.
func (b Box) Contains(o Box, tol float64) bool {
	return o.Left >= b.Left-tol &&
		o.Top >= b.Top-tol &&
		o.Right() <= b.Right()+tol &&
		o.Bottom() <= b.Bottom()+tol
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.Left += dx
	b.Top += dy
	return b
}
