package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/geom"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	columns int
	gap     float64
}

// WithScale sets the slide scale factor (default 0.5).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithColumns sets how many slides are drawn per row (default 2).
func WithColumns(n int) PNGOption {
	return func(r *pngRenderer) { r.columns = n }
}

// maxPixels bounds the sheet size.
const maxPixels = 64 << 20

// RenderPNG draws a wireframe contact sheet of the snapshots.
func RenderPNG(slides []flow.SlideSnapshot, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 0.5, columns: 2, gap: 16}
	for _, opt := range opts {
		opt(&r)
	}
	if len(slides) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no slides to render")
	}
	if r.scale <= 0 || r.columns < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid png options")
	}

	vp := slides[0].Viewport
	cellW := vp.Width * r.scale
	cellH := vp.Height * r.scale
	cols := min(r.columns, len(slides))
	rows := (len(slides) + cols - 1) / cols
	w := int(math.Ceil(float64(cols)*(cellW+r.gap) + r.gap))
	h := int(math.Ceil(float64(rows)*(cellH+r.gap) + r.gap))
	if w*h > maxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png sheet too large: %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(0.93, 0.93, 0.95)
	dc.Clear()
	for i, s := range slides {
		x := r.gap + float64(i%cols)*(cellW+r.gap)
		y := r.gap + float64(i/cols)*(cellH+r.gap)
		r.drawSlide(dc, s, x, y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// drawSlide draws one slide with its frame's top-left corner at (x, y).
func (r *pngRenderer) drawSlide(dc *gg.Context, s flow.SlideSnapshot, x, y float64) {
	// Map page coordinates of this slide onto the sheet.
	place := func(b geom.Box) (float64, float64, float64, float64) {
		return x + (b.Left-s.Frame.Left)*r.scale, y + (b.Top-s.Frame.Top)*r.scale, b.Width * r.scale, b.Height * r.scale
	}

	dc.Push()
	defer dc.Pop()
	dc.DrawRectangle(x, y, s.Frame.Width*r.scale, s.Frame.Height*r.scale)
	dc.Clip()

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x, y, s.Frame.Width*r.scale, s.Frame.Height*r.scale)
	dc.Fill()

	dc.SetRGB(0.85, 0.88, 0.95)
	dc.DrawRectangle(place(s.Header))
	dc.Fill()
	dc.SetRGB(0.1, 0.1, 0.2)
	hx, hy, _, hh := place(s.Header)
	dc.DrawStringAnchored(s.Title, hx+4, hy+hh/2, 0, 0.5)

	for _, b := range s.Blocks {
		if b.Kind == "figure" || b.Kind == "figure-group" || b.Box.Empty() {
			continue
		}
		dc.SetRGB(0.88, 0.88, 0.88)
		dc.DrawRectangle(place(b.Box))
		dc.Fill()
	}

	for _, f := range s.Figures {
		if f.InBounds {
			dc.SetRGB(0.55, 0.7, 0.9)
		} else {
			dc.SetRGB(0.95, 0.45, 0.45)
		}
		dc.DrawRectangle(place(f.Image))
		dc.Fill()
		if f.Caption != "" {
			fx, fy, fw, fh := place(f.Box)
			dc.SetRGB(0.3, 0.3, 0.3)
			dc.DrawStringAnchored(f.Caption, fx+fw/2, fy+fh, 0.5, 1)
		}
	}

	dc.SetLineWidth(1)
	if s.Overflow > overflowTolerance {
		dc.SetRGB(0.9, 0.1, 0.1)
		dc.SetLineWidth(2)
	} else {
		dc.SetRGB(0.4, 0.6, 0.4)
	}
	dc.DrawRectangle(place(s.Content))
	dc.Stroke()

	dc.SetRGB(0.5, 0.5, 0.5)
	fx, fy, fw, fh := place(s.FooterBox)
	dc.DrawStringAnchored(s.PageLabel, fx+fw, fy+fh/2, 1, 0.5)
	if s.Footer != "" {
		dc.DrawStringAnchored(s.Footer, fx, fy+fh/2, 0, 0.5)
	}
}
