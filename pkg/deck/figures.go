package deck

import "strings"

// figureOnly reports whether a paragraph holds figures and nothing else.
func figureOnly(p *Node) bool {
	if p.Kind != KindParagraph || strings.TrimSpace(p.Text) != "" || len(p.children) == 0 {
		return false
	}
	for _, c := range p.children {
		if c.Kind != KindFigure {
			return false
		}
	}
	return true
}

// unwrapFigureParagraphs replaces figure-only paragraphs with the figure
// itself, or with a figure group when the paragraph held several.
func unwrapFigureParagraphs(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if !figureOnly(n) {
			out = append(out, n)
			continue
		}
		figs := append([]*Node(nil), n.children...)
		if len(figs) == 1 {
			n.remove(figs[0])
			out = append(out, figs[0])
			continue
		}
		group := NewNode(KindFigureGroup, figs...)
		group.FromParagraph = true
		out = append(out, group)
	}
	return out
}

// groupFigures wraps runs of two or more consecutive figures in a group.
func groupFigures(nodes []*Node) []*Node {
	var (
		out []*Node
		run []*Node
	)
	flush := func() {
		if len(run) >= 2 {
			out = append(out, NewNode(KindFigureGroup, run...))
		} else {
			out = append(out, run...)
		}
		run = nil
	}
	for _, n := range nodes {
		if n.Kind == KindFigure {
			run = append(run, n)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()
	return out
}

// liftListFigures moves figures out of list items and places them right
// after their list, so slide-level fitting and centering can reach them.
func liftListFigures(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != KindList {
			if n.Kind == KindQuote {
				kids := liftListFigures(append([]*Node(nil), n.children...))
				n.children = nil
				n.Append(kids...)
			}
			out = append(out, n)
			continue
		}
		lifted := liftFromList(n)
		out = append(out, n)
		out = append(out, lifted...)
	}
	return out
}

func liftFromList(list *Node) []*Node {
	var lifted []*Node
	for _, item := range append([]*Node(nil), list.children...) {
		kids := liftListFigures(append([]*Node(nil), item.children...))
		item.children = nil

		var keep []*Node
		for _, k := range kids {
			switch {
			case k.IsMedia():
				lifted = append(lifted, k)
			case k.Kind == KindParagraph:
				for _, c := range append([]*Node(nil), k.children...) {
					if c.IsMedia() {
						k.remove(c)
						lifted = append(lifted, c)
					}
				}
				if strings.TrimSpace(k.Text) != "" || len(k.children) > 0 {
					keep = append(keep, k)
				}
			default:
				keep = append(keep, k)
			}
		}
		for _, f := range lifted {
			f.parent = nil
		}
		if len(keep) == 0 {
			list.remove(item)
			continue
		}
		item.Append(keep...)
	}
	return lifted
}
