package flow

import (
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// SlideSnapshot is the measured state of one slide.
type SlideSnapshot struct {
	Index     int       `json:"index"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	PageLabel string    `json:"page_label"`
	Footer    string    `json:"footer,omitempty"`
	Viewport  geom.Size `json:"viewport"`

	// Frame is the slide rectangle in page coordinates.
	Frame geom.Box `json:"frame"`

	Inner         geom.Box  `json:"inner"`
	Header        geom.Box  `json:"header"`
	Content       geom.Box  `json:"content"`
	FooterBox     geom.Box  `json:"footer_box"`
	ContentScroll geom.Size `json:"content_scroll"`

	// Overflow is how far the content extends past its client box.
	Overflow float64 `json:"overflow"`

	Blocks  []BlockSnapshot  `json:"blocks"`
	Figures []FigureSnapshot `json:"figures"`
	Groups  []GroupSnapshot  `json:"groups,omitempty"`
}

// BlockSnapshot is a direct child of the content area.
type BlockSnapshot struct {
	Kind        string   `json:"kind"`
	Box         geom.Box `json:"box"`
	Text        string   `json:"text,omitempty"`
	SpaceTop    float64  `json:"space_top,omitempty"`
	SpaceBottom float64  `json:"space_bottom,omitempty"`
}

// FigureSnapshot is one figure with its rendered image.
type FigureSnapshot struct {
	Src      string             `json:"src"`
	Caption  string             `json:"caption,omitempty"`
	Loaded   bool               `json:"loaded"`
	Natural  geom.Size          `json:"natural"`
	Box      geom.Box           `json:"box"`
	Image    geom.Box           `json:"image"`
	InBounds bool               `json:"in_bounds"`
	Hints    map[string]float64 `json:"hints,omitempty"`
}

// GroupSnapshot is a figure group and the columns it flows into.
type GroupSnapshot struct {
	Box     geom.Box `json:"box"`
	Columns int      `json:"columns"`
	Figures int      `json:"figures"`
}

const previewLen = 60

// Snapshot measures every slide in the current flow model.
func (h *Host) Snapshot() []SlideSnapshot {
	out := make([]SlideSnapshot, 0, len(h.slides))
	for i, s := range h.slides {
		if s.Inner == nil || s.Content == nil {
			continue
		}
		out = append(out, h.snapshot(i, s))
	}
	return out
}

func (h *Host) snapshot(i int, s *deck.Slide) SlideSnapshot {
	vp := h.Viewport()
	content := h.Box(s.Content)
	scroll := h.ScrollSize(s.Content)
	snap := SlideSnapshot{
		Index:         s.Index,
		Title:         s.Title,
		Kind:          string(s.Kind),
		PageLabel:     s.PageLabel,
		Footer:        s.FooterText,
		Viewport:      vp,
		Frame:         geom.Box{Top: float64(i) * (vp.Height + h.metrics.SlideGap), Width: vp.Width, Height: vp.Height},
		Inner:         h.Box(s.Inner),
		Header:        h.Box(s.Header),
		Content:       content,
		FooterBox:     h.Box(s.Footer),
		ContentScroll: scroll,
		Overflow:      max(0, scroll.Height-content.Height),
	}
	top, bottom := measure.HintSpaceTop, measure.HintSpaceBottom
	if h.print {
		top, bottom = measure.HintPrintSpaceTop, measure.HintPrintSpaceBottom
	}
	for _, c := range s.Content.Children() {
		b := BlockSnapshot{Kind: c.Kind.String(), Box: h.Box(c), Text: preview(c.Text)}
		b.SpaceTop, _ = h.hints.Hint(c, top)
		b.SpaceBottom, _ = h.hints.Hint(c, bottom)
		snap.Blocks = append(snap.Blocks, b)
	}
	for _, f := range s.Figures() {
		img := f.Image()
		box := h.Box(f)
		fs := FigureSnapshot{
			Src:      img.Src,
			Caption:  f.Caption,
			Loaded:   img.Loaded(),
			Natural:  img.Natural,
			Box:      box,
			Image:    h.Box(img),
			InBounds: content.Contains(box, 2),
		}
		for _, n := range []*deck.Node{f, img} {
			for k, v := range h.hints.Of(n) {
				if fs.Hints == nil {
					fs.Hints = make(map[string]float64)
				}
				fs.Hints[string(k)] = v
			}
		}
		snap.Figures = append(snap.Figures, fs)
	}
	for _, g := range s.Groups() {
		cols := min(2, len(g.Children()))
		if v, ok := h.hints.Hint(g, measure.HintColumns); ok {
			cols = int(v)
		}
		snap.Groups = append(snap.Groups, GroupSnapshot{Box: h.Box(g), Columns: cols, Figures: len(g.Children())})
	}
	return snap
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen-1]) + "…"
}
