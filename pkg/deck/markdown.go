package deck

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/matzehuels/slidefit/pkg/errors"
)

// Builder renders markdown documents into decks.
type Builder struct {
	md     goldmark.Markdown
	assets *AssetLoader
}

// Option configures a [Builder].
type Option func(*Builder)

// WithAssets resolves and sizes image sources with l.
func WithAssets(l *AssetLoader) Option {
	return func(b *Builder) { b.assets = l }
}

// NewBuilder returns a builder using GitHub flavored markdown.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parse builds a deck without asset resolution.
func Parse(src []byte) (*Deck, error) {
	return NewBuilder().Build(src)
}

// Build segments src into slides and renders each slide body.
func (b *Builder) Build(src []byte) (*Deck, error) {
	if !utf8.Valid(src) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "markdown is not valid UTF-8")
	}

	sections, meta := Segment(string(src))
	d := &Deck{Meta: meta}
	for i, sec := range sections {
		body := b.render(sec.Markdown)
		d.Slides = append(d.Slides, newSlide(i, len(sections), sec, meta.Footer, body))
	}
	return d, nil
}

// render converts a slide body into normalized content nodes.
func (b *Builder) render(markdown string) []*Node {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	src := []byte(markdown)
	doc := b.md.Parser().Parse(text.NewReader(src))

	nodes := b.blocks(doc, src)
	nodes = liftListFigures(nodes)
	nodes = unwrapFigureParagraphs(nodes)
	return groupFigures(nodes)
}

func (b *Builder) blocks(parent ast.Node, src []byte) []*Node {
	var out []*Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if n := b.block(c, src); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *Builder) block(n ast.Node, src []byte) *Node {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return b.paragraph(v, src)
	case *ast.Heading:
		return &Node{Kind: KindHeading, Level: v.Level, Text: strings.TrimSpace(b.inline(v, src, nil))}
	case *ast.List:
		list := &Node{Kind: KindList, Ordered: v.IsOrdered()}
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			list.Append(NewNode(KindListItem, b.blocks(item, src)...))
		}
		return list
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return &Node{Kind: KindCode, Text: strings.TrimRight(linesOf(n, src), "\n")}
	case *ast.Blockquote:
		return NewNode(KindQuote, b.blocks(v, src)...)
	case *ast.ThematicBreak:
		return &Node{Kind: KindRule}
	case *east.Table:
		return b.table(v, src)
	default:
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			return NewNode(KindQuote, b.blocks(n, src)...)
		}
		return nil
	}
}

// paragraph collects inline text. Images become figure children.
func (b *Builder) paragraph(n ast.Node, src []byte) *Node {
	p := &Node{Kind: KindParagraph}
	p.Text = strings.TrimSpace(b.inline(n, src, p))
	return p
}

func (b *Builder) inline(n ast.Node, src []byte, host *Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			switch {
			case v.HardLineBreak():
				sb.WriteByte('\n')
			case v.SoftLineBreak():
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.AutoLink:
			sb.Write(v.URL(src))
		case *ast.RawHTML:
		case *ast.Image:
			if host != nil {
				host.Append(b.figure(v, src))
			}
		default:
			sb.WriteString(b.inline(c, src, host))
		}
	}
	return sb.String()
}

func (b *Builder) figure(img *ast.Image, src []byte) *Node {
	alt := strings.TrimSpace(b.inline(img, src, nil))
	caption := alt
	if caption == "" {
		caption = strings.TrimSpace(string(img.Title))
	}

	image := &Node{Kind: KindImage, Src: string(img.Destination), Alt: alt}
	if b.assets != nil {
		image.Src = b.assets.Resolve(image.Src)
		if size, ok := b.assets.NaturalSize(image.Src); ok {
			image.Natural = size
		}
	}
	fig := NewNode(KindFigure, image)
	fig.Caption = caption
	return fig
}

func (b *Builder) table(t *east.Table, src []byte) *Node {
	node := &Node{Kind: KindTable}
	var rows []string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(b.inline(c, src, nil)))
		}
		if len(cells) > node.Cols {
			node.Cols = len(cells)
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	node.Rows = len(rows)
	node.Text = strings.Join(rows, "\n")
	return node
}

func linesOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
