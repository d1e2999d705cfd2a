package deck

import "github.com/matzehuels/slidefit/pkg/geom"

// Kind identifies the role of a [Node] in the slide tree.
type Kind int

const (
	KindInner Kind = iota
	KindHeader
	KindContent
	KindFooter
	KindTitleMeta
	KindMetaRow
	KindBody
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindCode
	KindTable
	KindQuote
	KindRule
	KindFigure
	KindFigureGroup
	KindImage
)

var kindNames = map[Kind]string{
	KindInner:       "inner",
	KindHeader:      "header",
	KindContent:     "content",
	KindFooter:      "footer",
	KindTitleMeta:   "title-meta",
	KindMetaRow:     "meta-row",
	KindBody:        "title-body",
	KindParagraph:   "paragraph",
	KindHeading:     "heading",
	KindList:        "list",
	KindListItem:    "list-item",
	KindCode:        "code",
	KindTable:       "table",
	KindQuote:       "quote",
	KindRule:        "rule",
	KindFigure:      "figure",
	KindFigureGroup: "figure-group",
	KindImage:       "image",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one element of a rendered slide. Nodes are compared by identity:
// the measurement port keys geometry and style hints on the pointer.
type Node struct {
	Kind Kind

	// Text is the plain text of text-bearing nodes. Code blocks keep their
	// line breaks.
	Text string
	// Level is the heading level for KindHeading.
	Level int
	// Ordered marks numbered lists.
	Ordered bool
	// Rows and Cols describe a KindTable.
	Rows, Cols int

	// Src is the resolved image source for KindImage, Alt its alt text.
	Src string
	Alt string
	// Natural is the intrinsic image size. Zero until the image is decoded.
	Natural geom.Size

	// Caption is the figure caption for KindFigure. May be empty.
	Caption string
	// FromParagraph marks a figure group created by unwrapping a paragraph.
	FromParagraph bool

	// Label and Value hold a KindMetaRow pair.
	Label, Value string

	children []*Node
	parent   *Node
}

// NewNode returns a node of the given kind with children attached.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	n.Append(children...)
	return n
}

// Append attaches children in order, detaching them from any previous parent.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) remove(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// PrevSibling returns the sibling rendered immediately before n.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	sib := n.parent.children
	for i, x := range sib {
		if x == n && i > 0 {
			return sib[i-1]
		}
	}
	return nil
}

// NextSibling returns the sibling rendered immediately after n.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	sib := n.parent.children
	for i, x := range sib {
		if x == n && i+1 < len(sib) {
			return sib[i+1]
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Figures returns every descendant figure that holds an image, in document
// order.
func (n *Node) Figures() []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Kind == KindFigure && x.Image() != nil {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Groups returns every descendant figure group.
func (n *Node) Groups() []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Kind == KindFigureGroup {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Image returns the figure's image node.
func (n *Node) Image() *Node {
	for _, c := range n.children {
		if c.Kind == KindImage {
			return c
		}
	}
	return nil
}

// IsMedia reports whether the node is a figure or a figure group.
func (n *Node) IsMedia() bool {
	return n.Kind == KindFigure || n.Kind == KindFigureGroup
}

// Loaded reports whether an image node knows its natural size.
func (n *Node) Loaded() bool {
	return n.Kind == KindImage && !n.Natural.IsZero()
}
