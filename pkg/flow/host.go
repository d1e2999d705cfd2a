package flow

import (
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// Host lays out the slides of a deck and implements [measure.Port] and
// [measure.PrintHost]. It is not safe for concurrent use; fitting passes
// are serialized by their caller.
type Host struct {
	hints   *measure.Hints
	slides  []*deck.Slide
	owner   map[*deck.Node]int
	screen  geom.Size
	page    geom.Size
	metrics Metrics
	text    TextMeasurer
	print   bool

	layouts []*slideLayout
	passes  int
}

// Option configures a Host.
type Option func(*Host)

// WithViewport sets the screen slide size.
func WithViewport(s geom.Size) Option {
	return func(h *Host) { h.screen = s }
}

// WithPage sets the print page size.
func WithPage(s geom.Size) Option {
	return func(h *Host) { h.page = s }
}

// WithMetrics replaces the default theme metrics.
func WithMetrics(m Metrics) Option {
	return func(h *Host) { h.metrics = m }
}

// WithMeasurer replaces the default text measurer.
func WithMeasurer(m TextMeasurer) Option {
	return func(h *Host) { h.text = m }
}

// New returns a host for the given slides. Slides are positioned one below
// the other in page coordinates.
func New(slides []*deck.Slide, opts ...Option) *Host {
	h := &Host{
		hints:   measure.NewHints(),
		slides:  slides,
		owner:   make(map[*deck.Node]int),
		screen:  geom.Size{Width: DefaultWidth, Height: DefaultWidth * 9 / 16},
		page:    geom.Size{Width: DefaultPageWidth, Height: DefaultPageHeight},
		metrics: DefaultMetrics(),
		text:    DefaultMeasurer(),
		layouts: make([]*slideLayout, len(slides)),
	}
	for _, opt := range opts {
		opt(h)
	}
	for i, s := range slides {
		if s.Inner == nil {
			continue
		}
		s.Inner.Walk(func(n *deck.Node) bool {
			h.owner[n] = i
			return true
		})
	}
	return h
}

// Slides returns the slides the host lays out.
func (h *Host) Slides() []*deck.Slide { return h.slides }

// Viewport returns the size of one slide in the current flow model.
func (h *Host) Viewport() geom.Size {
	if h.print {
		return h.page
	}
	return h.screen
}

// Printing reports whether the host is in its print flow model.
func (h *Host) Printing() bool { return h.print }

// Layouts reports how many slide layouts have been computed so far.
func (h *Host) Layouts() int { return h.passes }

// EnterPrint switches to the print page and print hints.
func (h *Host) EnterPrint() {
	if !h.print {
		h.print = true
		h.invalidateAll()
	}
}

// ExitPrint switches back to the screen viewport.
func (h *Host) ExitPrint() {
	if h.print {
		h.print = false
		h.invalidateAll()
	}
}

// Box implements [measure.Port].
func (h *Host) Box(n *deck.Node) geom.Box {
	l := h.layoutOf(n)
	if l == nil {
		return geom.Box{}
	}
	return l.boxes[n]
}

// ClientSize implements [measure.Port]. Only the inner and content
// containers clip; every other node reports its box size.
func (h *Host) ClientSize(n *deck.Node) geom.Size {
	l := h.layoutOf(n)
	if l == nil {
		return geom.Size{}
	}
	if s, ok := l.client[n]; ok {
		return s
	}
	return l.boxes[n].Size()
}

// ScrollSize implements [measure.Port].
func (h *Host) ScrollSize(n *deck.Node) geom.Size {
	l := h.layoutOf(n)
	if l == nil {
		return geom.Size{}
	}
	if s, ok := l.scroll[n]; ok {
		return s
	}
	return l.boxes[n].Size()
}

func (h *Host) Hint(n *deck.Node, hint measure.Hint) (float64, bool) {
	return h.hints.Hint(n, hint)
}

func (h *Host) SetHint(n *deck.Node, hint measure.Hint, v float64) {
	if cur, ok := h.hints.Hint(n, hint); ok && cur == v {
		return
	}
	h.hints.SetHint(n, hint, v)
	h.invalidate(n)
}

func (h *Host) ClearHint(n *deck.Node, hint measure.Hint) {
	if _, ok := h.hints.Hint(n, hint); !ok {
		return
	}
	h.hints.ClearHint(n, hint)
	h.invalidate(n)
}

// HintsOf returns a copy of the hints set on n.
func (h *Host) HintsOf(n *deck.Node) map[measure.Hint]float64 {
	return h.hints.Of(n)
}

func (h *Host) invalidate(n *deck.Node) {
	if i, ok := h.owner[n]; ok {
		h.layouts[i] = nil
	}
}

func (h *Host) invalidateAll() {
	for i := range h.layouts {
		h.layouts[i] = nil
	}
}

func (h *Host) layoutOf(n *deck.Node) *slideLayout {
	i, ok := h.owner[n]
	if !ok {
		return nil
	}
	return h.layout(i)
}

func (h *Host) layout(i int) *slideLayout {
	if h.layouts[i] == nil {
		h.layouts[i] = h.layoutSlide(i)
		h.passes++
	}
	return h.layouts[i]
}
