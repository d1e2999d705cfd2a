package flow

import (
	"strings"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/measure"
)

type slideLayout struct {
	boxes  map[*deck.Node]geom.Box
	client map[*deck.Node]geom.Size
	scroll map[*deck.Node]geom.Size
}

func (l *slideLayout) container(n *deck.Node, box geom.Box, scroll geom.Size) {
	l.boxes[n] = box
	l.client[n] = box.Size()
	l.scroll[n] = scroll
}

// layouter flows the content of one slide.
type layouter struct {
	h      *Host
	l      *slideLayout
	m      Metrics
	print  bool
	hidden bool
}

func (h *Host) layoutSlide(i int) *slideLayout {
	s := h.slides[i]
	l := &slideLayout{
		boxes:  make(map[*deck.Node]geom.Box),
		client: make(map[*deck.Node]geom.Size),
		scroll: make(map[*deck.Node]geom.Size),
	}
	if s.Inner == nil || s.Content == nil {
		return l
	}
	m := h.metrics
	vp := h.Viewport()
	pad := m.Padding
	if h.print {
		pad = m.PrintPadding
	}
	top := float64(i) * (vp.Height + m.SlideGap)
	inner := geom.Box{
		Left:   pad,
		Top:    top + pad,
		Width:  max(0, vp.Width-2*pad),
		Height: max(0, vp.Height-2*pad),
	}

	lines, titleW := wrap(h.text, s.Title, inner.Width, m.TitleSize)
	header := geom.Box{Left: inner.Left, Top: inner.Top, Width: inner.Width, Height: float64(lines) * m.lineHeight(m.TitleSize)}
	footer := geom.Box{Left: inner.Left, Top: inner.Bottom() - m.FooterHeight, Width: inner.Width, Height: m.FooterHeight}
	contentTop := header.Bottom() + m.HeaderGap
	content := geom.Box{
		Left:   inner.Left,
		Top:    contentTop,
		Width:  inner.Width,
		Height: max(0, footer.Top-m.FooterGap-contentTop),
	}
	fixed := header.Height + m.HeaderGap + m.FooterGap + m.FooterHeight

	l.container(s.Inner, inner, geom.Size{
		Width:  max(inner.Width, titleW),
		Height: max(inner.Height, fixed),
	})
	if s.Header != nil {
		l.boxes[s.Header] = header
	}
	if s.Footer != nil {
		l.boxes[s.Footer] = footer
	}

	lo := &layouter{h: h, l: l, m: m, print: h.print}
	if h.print {
		_, lo.hidden = h.hints.Hint(s.Content, measure.HintHideMedia)
	}
	extentH, extentW := lo.stack(s.Content.Children(), content.Left, content.Top, content.Width)
	l.container(s.Content, content, geom.Size{
		Width:  max(content.Width, extentW),
		Height: max(content.Height, extentH),
	})
	return l
}

// spacing returns the margins a media block carries in the current mode.
func (lo *layouter) spacing(n *deck.Node) (top, bottom float64) {
	if !n.IsMedia() {
		return 0, 0
	}
	th, bh := measure.HintSpaceTop, measure.HintSpaceBottom
	if lo.print {
		th, bh = measure.HintPrintSpaceTop, measure.HintPrintSpaceBottom
	}
	top, _ = lo.h.hints.Hint(n, th)
	bottom, _ = lo.h.hints.Hint(n, bh)
	return max(0, top), max(0, bottom)
}

// stack places blocks one below the other and returns the extent they
// cover measured from (x, y).
func (lo *layouter) stack(children []*deck.Node, x, y, w float64) (height, width float64) {
	cursor := y
	right := x + w
	for _, c := range children {
		if lo.hidden && c.IsMedia() {
			continue
		}
		mt, mb := lo.spacing(c)
		cursor += mt
		h, r := lo.block(c, x, cursor, w)
		cursor += h + mb
		right = max(right, r)
	}
	return cursor - y, right - x
}

// block lays out one node at (x, y) with available width w and returns its
// height and right edge.
func (lo *layouter) block(n *deck.Node, x, y, w float64) (float64, float64) {
	if lo.hidden && n.IsMedia() {
		return 0, x
	}
	m := lo.m
	h, right := 0.0, x+w
	switch n.Kind {
	case deck.KindParagraph:
		h, right = lo.text(n.Text, x, w, m.BodySize)
		ch, cw := lo.stack(n.Children(), x, y+h, w)
		h += ch
		right = max(right, x+cw)
	case deck.KindHeading:
		h, right = lo.text(n.Text, x, w, m.headingSize(n.Level))
	case deck.KindList:
		cursor := y
		for i, item := range n.Children() {
			if i > 0 {
				cursor += m.ItemGap
			}
			ih, iw := lo.stack(item.Children(), x+m.ListIndent, cursor, w-m.ListIndent)
			if ih == 0 {
				ih = m.lineHeight(m.BodySize)
			}
			lo.l.boxes[item] = geom.Box{Left: x, Top: cursor, Width: w, Height: ih}
			cursor += ih
			right = max(right, x+m.ListIndent+iw)
		}
		h = cursor - y
	case deck.KindCode:
		lines := strings.Split(n.Text, "\n")
		widest := 0.0
		for _, line := range lines {
			widest = max(widest, lo.h.text.Advance(line, m.CodeSize))
		}
		h = float64(len(lines))*m.lineHeight(m.CodeSize) + 2*m.CodePadding + m.BlockGap
		right = max(right, x+widest+2*m.CodePadding)
	case deck.KindTable:
		h = float64(n.Rows)*m.TableRowHeight + m.BlockGap
	case deck.KindQuote:
		ch, cw := lo.stack(n.Children(), x+m.QuoteIndent, y, w-m.QuoteIndent)
		h = ch
		right = max(right, x+m.QuoteIndent+cw)
	case deck.KindRule:
		h = 2 + m.BlockGap
	case deck.KindTitleMeta:
		for i, row := range n.Children() {
			lo.l.boxes[row] = geom.Box{Left: x, Top: y + float64(i)*m.MetaRowHeight, Width: w, Height: m.MetaRowHeight}
		}
		if rows := len(n.Children()); rows > 0 {
			h = float64(rows)*m.MetaRowHeight + m.BlockGap
		}
	case deck.KindBody:
		var cw float64
		h, cw = lo.stack(n.Children(), x, y, w)
		right = max(right, x+cw)
	case deck.KindFigure:
		h, right = lo.figure(n, x, y, w)
	case deck.KindFigureGroup:
		h, right = lo.group(n, x, y, w)
	default:
		if len(n.Children()) > 0 {
			var cw float64
			h, cw = lo.stack(n.Children(), x, y, w)
			right = max(right, x+cw)
		} else {
			h, right = lo.text(n.Text, x, w, m.BodySize)
		}
	}
	lo.l.boxes[n] = geom.Box{Left: x, Top: y, Width: w, Height: h}
	return h, right
}

// text returns the height of a wrapped text block including its trailing
// gap, or zero for empty text.
func (lo *layouter) text(s string, x, w, size float64) (float64, float64) {
	lines, widest := wrap(lo.h.text, s, w, size)
	if lines == 0 {
		return 0, x + w
	}
	return float64(lines)*lo.m.lineHeight(size) + lo.m.BlockGap, x + max(w, widest)
}

func (lo *layouter) figure(n *deck.Node, x, y, w float64) (float64, float64) {
	m := lo.m
	img := n.Image()
	iw, ih := lo.imageSize(img, w)
	capH := 0.0
	if n.Caption != "" {
		lines, _ := wrap(lo.h.text, n.Caption, w, m.CaptionSize)
		capH = m.CaptionGap + float64(lines)*m.lineHeight(m.CaptionSize)
	}
	if img != nil {
		lo.l.boxes[img] = geom.Box{Left: x + (w-iw)/2, Top: y + m.MediaPadding, Width: iw, Height: ih}
	}
	return 2*m.MediaPadding + ih + capH, x + max(w, iw)
}

// imageSize resolves the rendered image size from its natural size and the
// hints of the active mode.
func (lo *layouter) imageSize(img *deck.Node, w float64) (float64, float64) {
	if img == nil || w <= 0 {
		return 0, 0
	}
	nat := img.Natural
	if nat.IsZero() {
		nat = lo.m.Placeholder
	}
	ratio := nat.Height / max(1, nat.Width)
	hints := lo.h.hints
	fig := img.Parent()

	var iw float64
	if lo.print {
		iw = min(nat.Width, w)
		if s, ok := hints.Hint(fig, measure.HintPrintScale); ok {
			iw *= s
		}
		iw = min(iw, w)
	} else {
		maxW := w
		if pct, ok := hints.Hint(img, measure.HintMaxWidthPct); ok {
			maxW = w * pct / 100
		}
		iw = min(nat.Width, maxW)
		if pct, ok := hints.Hint(img, measure.HintWidthPct); ok {
			iw = min(w*pct/100, maxW)
		}
	}
	ih := iw * ratio

	capHint := measure.HintMaxHeight
	if lo.print {
		capHint = measure.HintPrintMaxHeight
	}
	if mh, ok := hints.Hint(img, capHint); ok && ih > mh {
		ih = max(0, mh)
		iw = ih / ratio
	}
	return iw, ih
}

func (lo *layouter) group(n *deck.Node, x, y, w float64) (float64, float64) {
	m := lo.m
	children := n.Children()
	if len(children) == 0 {
		return 0, x + w
	}
	cols := min(2, len(children))
	if v, ok := lo.h.hints.Hint(n, measure.HintColumns); ok {
		cols = int(v)
	}
	cols = max(1, min(cols, len(children)))
	cellW := max(0, (w-float64(cols-1)*m.GroupGap)/float64(cols))

	cursor := y + m.MediaPadding
	right := x + w
	for start := 0; start < len(children); start += cols {
		if start > 0 {
			cursor += m.GroupGap
		}
		rowH := 0.0
		for col, c := range children[start:min(start+cols, len(children))] {
			cx := x + float64(col)*(cellW+m.GroupGap)
			ch, cr := lo.block(c, cx, cursor, cellW)
			rowH = max(rowH, ch)
			right = max(right, cr)
		}
		cursor += rowH
	}
	return cursor + m.MediaPadding - y, right
}
