package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

// fakePort is a minimal block-flow host. Content children stack vertically
// with no gaps; text blocks have fixed heights; figures size themselves
// from their natural size and hints. Inner containers never scroll.
type fakePort struct {
	*measure.Hints
	size  map[*deck.Node]geom.Size
	fixed map[*deck.Node]float64
	print bool
}

func newFakePort() *fakePort {
	return &fakePort{
		Hints: measure.NewHints(),
		size:  make(map[*deck.Node]geom.Size),
		fixed: make(map[*deck.Node]float64),
	}
}

// add registers a slide whose content area is w x h.
func (f *fakePort) add(s *deck.Slide, w, h float64) *deck.Slide {
	f.size[s.Content] = geom.Size{Width: w, Height: h}
	f.size[s.Inner] = geom.Size{Width: w + 20, Height: h + 20}
	return s
}

func (f *fakePort) text(h float64) *deck.Node {
	n := &deck.Node{Kind: deck.KindParagraph, Text: "text"}
	f.fixed[n] = h
	return n
}

func (f *fakePort) EnterPrint() { f.print = true }
func (f *fakePort) ExitPrint()  { f.print = false }

func (f *fakePort) Box(n *deck.Node) geom.Box {
	switch n.Kind {
	case deck.KindContent:
		s := f.size[n]
		return geom.Box{Width: s.Width, Height: s.Height}
	case deck.KindInner:
		s := f.size[n]
		return geom.Box{Left: -10, Top: -10, Width: s.Width, Height: s.Height}
	}
	content := contentOf(n)
	if content == nil {
		return geom.Box{}
	}
	boxes, _ := f.layout(content)
	return boxes[n]
}

func (f *fakePort) ClientSize(n *deck.Node) geom.Size {
	return f.size[n]
}

func (f *fakePort) ScrollSize(n *deck.Node) geom.Size {
	s := f.size[n]
	if n.Kind == deck.KindContent {
		_, extent := f.layout(n)
		s.Height = math.Max(s.Height, extent)
	}
	return s
}

func (f *fakePort) spacingHints() (measure.Hint, measure.Hint) {
	if f.print {
		return measure.HintPrintSpaceTop, measure.HintPrintSpaceBottom
	}
	return measure.HintSpaceTop, measure.HintSpaceBottom
}

func (f *fakePort) layout(content *deck.Node) (map[*deck.Node]geom.Box, float64) {
	w := f.size[content].Width
	boxes := make(map[*deck.Node]geom.Box)
	_, hidden := f.Hint(content, measure.HintHideMedia)
	hidden = hidden && f.print
	topHint, bottomHint := f.spacingHints()

	y := 0.0
	for _, c := range content.Children() {
		if hidden && c.IsMedia() {
			continue
		}
		mt, _ := f.Hint(c, topHint)
		mb, _ := f.Hint(c, bottomHint)
		y += mt
		h := f.block(c, w, 0, y, boxes)
		boxes[c] = geom.Box{Top: y, Width: w, Height: h}
		y += h + mb
	}
	return boxes, y
}

func (f *fakePort) block(n *deck.Node, w, x, y float64, boxes map[*deck.Node]geom.Box) float64 {
	switch n.Kind {
	case deck.KindFigure:
		h, iw := f.image(n, w)
		if img := n.Image(); img != nil {
			boxes[img] = geom.Box{Left: x, Top: y, Width: iw, Height: h}
		}
		return h
	case deck.KindFigureGroup:
		cols := 2.0
		if v, ok := f.Hint(n, measure.HintColumns); ok {
			cols = v
		}
		cellW := w / cols
		total, rowMax := 0.0, 0.0
		for i, c := range n.Children() {
			col := float64(i % int(cols))
			if col == 0 && i > 0 {
				total += rowMax
				rowMax = 0
			}
			h := f.block(c, cellW, x+col*cellW, y+total, boxes)
			boxes[c] = geom.Box{Left: x + col*cellW, Top: y + total, Width: cellW, Height: h}
			rowMax = math.Max(rowMax, h)
		}
		return total + rowMax
	default:
		return f.fixed[n]
	}
}

func (f *fakePort) image(fig *deck.Node, w float64) (h, iw float64) {
	img := fig.Image()
	if img == nil {
		return 0, 0
	}
	nat := img.Natural
	if nat.IsZero() {
		nat = geom.Size{Width: 400, Height: 300}
	}
	ratio := nat.Height / nat.Width

	if f.print {
		iw = math.Min(nat.Width, w)
		h = iw * ratio
		if s, ok := f.Hint(fig, measure.HintPrintScale); ok {
			iw, h = iw*s, h*s
		}
		if mh, ok := f.Hint(img, measure.HintPrintMaxHeight); ok && h > mh {
			iw, h = mh/ratio, mh
		}
		return h, iw
	}

	if pct, ok := f.Hint(img, measure.HintWidthPct); ok {
		iw = w * pct / 100
	} else {
		maxPct := 100.0
		if v, ok := f.Hint(img, measure.HintMaxWidthPct); ok {
			maxPct = v
		}
		iw = math.Min(nat.Width, w*maxPct/100)
	}
	h = iw * ratio
	if mh, ok := f.Hint(img, measure.HintMaxHeight); ok && h > mh {
		iw, h = mh/ratio, mh
	}
	return h, iw
}

func contentOf(n *deck.Node) *deck.Node {
	for p := n; p != nil; p = p.Parent() {
		if p.Kind == deck.KindContent {
			return p
		}
	}
	return nil
}

func newSlide(kind deck.SlideKind, children ...*deck.Node) *deck.Slide {
	s := &deck.Slide{Kind: kind, Title: "slide"}
	s.Header = &deck.Node{Kind: deck.KindHeader}
	s.Content = deck.NewNode(deck.KindContent, children...)
	s.Footer = &deck.Node{Kind: deck.KindFooter}
	s.Inner = deck.NewNode(deck.KindInner, s.Header, s.Content, s.Footer)
	return s
}

func figure(w, h float64) *deck.Node {
	img := &deck.Node{Kind: deck.KindImage, Natural: geom.Size{Width: w, Height: h}}
	return deck.NewNode(deck.KindFigure, img)
}

// hintState captures every hint under the given slides.
func hintState(p *fakePort, slides ...*deck.Slide) map[*deck.Node]map[measure.Hint]float64 {
	out := make(map[*deck.Node]map[measure.Hint]float64)
	for _, s := range slides {
		s.Inner.Walk(func(n *deck.Node) bool {
			if h := p.Of(n); h != nil {
				out[n] = h
			}
			return true
		})
	}
	return out
}
