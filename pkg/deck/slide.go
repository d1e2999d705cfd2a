package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// SlideKind distinguishes the title slide from content slides.
type SlideKind string

const (
	SlideTitle   SlideKind = "title"
	SlideContent SlideKind = "content"
)

// Metadata is the presentation metadata read from the title section.
type Metadata struct {
	Author       string `json:"author,omitempty"`
	Organization string `json:"organization,omitempty"`
	Position     string `json:"position,omitempty"`
	Date         string `json:"date,omitempty"`
	Footer       string `json:"footer,omitempty"`
}

func (m *Metadata) set(key, value string) {
	switch strings.ToLower(key) {
	case "author":
		m.Author = value
	case "organization":
		m.Organization = value
	case "position":
		m.Position = value
	case "date":
		m.Date = value
	case "footer":
		m.Footer = value
	}
}

// rows returns the labelled rows shown on the title slide. The footer is not
// one of them.
func (m Metadata) rows() [][2]string {
	var out [][2]string
	for _, r := range [][2]string{
		{"Author", m.Author},
		{"Organization", m.Organization},
		{"Position", m.Position},
		{"Date", m.Date},
	} {
		if r[1] != "" {
			out = append(out, r)
		}
	}
	return out
}

// Section is one segment of the source document before it is rendered.
type Section struct {
	Kind     SlideKind
	Title    string
	Markdown string
	Meta     Metadata
}

// Slide is a rendered slide. The fitting engine never mutates it; all layout
// decisions are written as hints through the measurement port.
type Slide struct {
	Index      int
	Kind       SlideKind
	Title      string
	Markdown   string
	Meta       Metadata
	FooterText string
	PageLabel  string

	Inner   *Node
	Header  *Node
	Content *Node
	Footer  *Node
}

// IsTitle reports whether this is the title slide.
func (s *Slide) IsTitle() bool { return s.Kind == SlideTitle }

// Figures returns the figures on the slide in document order.
func (s *Slide) Figures() []*Node {
	if s.Content == nil {
		return nil
	}
	return s.Content.Figures()
}

// Groups returns the figure groups on the slide.
func (s *Slide) Groups() []*Node {
	if s.Content == nil {
		return nil
	}
	return s.Content.Groups()
}

// Deck is an ordered list of slides plus the document metadata.
type Deck struct {
	Meta   Metadata
	Slides []*Slide
}

// Figures counts the figures across all slides.
func (d *Deck) Figures() int {
	n := 0
	for _, s := range d.Slides {
		n += len(s.Figures())
	}
	return n
}

var (
	h1Pattern   = regexp.MustCompile(`^#\s+(.+?)\s*$`)
	h2Pattern   = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	metaPattern = regexp.MustCompile(`(?i)^\s*[-*]\s*(author|organization|position|date|footer)\s*:\s*(.*?)\s*$`)
)

// Segment splits markdown into slide sections and returns the document
// metadata found in the title section.
func Segment(markdown string) ([]Section, Metadata) {
	normalized := strings.ReplaceAll(markdown, "\r\n", "\n")

	type page struct {
		title string
		lines []string
	}
	var (
		title    *page
		current  *page
		pages    []*page
		preamble []string
	)

	for _, line := range strings.Split(normalized, "\n") {
		if m := h1Pattern.FindStringSubmatch(line); m != nil {
			if title == nil {
				title = &page{title: m[1]}
			} else {
				if current != nil {
					pages = append(pages, current)
				}
				current = &page{title: m[1]}
			}
			continue
		}
		if m := h2Pattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				pages = append(pages, current)
			}
			current = &page{title: m[1]}
			continue
		}
		switch {
		case current != nil:
			current.lines = append(current.lines, line)
		case title != nil:
			title.lines = append(title.lines, line)
		default:
			preamble = append(preamble, line)
		}
	}
	if current != nil {
		pages = append(pages, current)
	}

	var (
		meta     Metadata
		sections []Section
	)
	if title != nil {
		titleMeta, rest := ExtractTitleMetadata(strings.TrimSpace(strings.Join(title.lines, "\n")))
		meta = titleMeta
		sections = append(sections, Section{Kind: SlideTitle, Title: title.title, Markdown: rest, Meta: titleMeta})
	}
	for _, p := range pages {
		sections = append(sections, Section{
			Kind:     SlideContent,
			Title:    p.title,
			Markdown: strings.TrimSpace(strings.Join(p.lines, "\n")),
		})
	}

	pre := strings.TrimSpace(strings.Join(preamble, "\n"))
	switch {
	case len(sections) == 0:
		body := pre
		if body == "" {
			body = strings.TrimSpace(normalized)
		}
		sections = append(sections, Section{Kind: SlideTitle, Title: "Untitled", Markdown: body})
	case pre != "" && sections[0].Kind == SlideTitle:
		parts := []string{}
		if sections[0].Markdown != "" {
			parts = append(parts, sections[0].Markdown)
		}
		sections[0].Markdown = strings.Join(append(parts, pre), "\n\n")
	}
	return sections, meta
}

// ExtractTitleMetadata pulls "- key: value" metadata lines out of a title
// body and returns the remaining markdown.
func ExtractTitleMetadata(body string) (Metadata, string) {
	var (
		meta Metadata
		rest []string
	)
	for _, line := range strings.Split(body, "\n") {
		if m := metaPattern.FindStringSubmatch(line); m != nil {
			meta.set(m[1], m[2])
			continue
		}
		rest = append(rest, line)
	}
	return meta, strings.TrimSpace(strings.Join(rest, "\n"))
}

// newSlide builds the fixed slide skeleton around rendered content nodes.
func newSlide(index, total int, sec Section, footer string, body []*Node) *Slide {
	s := &Slide{
		Index:      index,
		Kind:       sec.Kind,
		Title:      sec.Title,
		Markdown:   sec.Markdown,
		Meta:       sec.Meta,
		FooterText: footer,
		PageLabel:  fmt.Sprintf("%d / %d", index+1, total),
	}

	s.Header = &Node{Kind: KindHeader, Text: sec.Title}
	s.Content = NewNode(KindContent)
	s.Footer = &Node{Kind: KindFooter, Text: footer}

	if sec.Kind == SlideTitle {
		if rows := sec.Meta.rows(); len(rows) > 0 {
			metaBlock := NewNode(KindTitleMeta)
			for _, r := range rows {
				metaBlock.Append(&Node{Kind: KindMetaRow, Label: r[0], Value: r[1]})
			}
			s.Content.Append(metaBlock)
		}
		if len(body) > 0 {
			s.Content.Append(NewNode(KindBody, body...))
		}
	} else {
		s.Content.Append(body...)
	}

	s.Inner = NewNode(KindInner, s.Header, s.Content, s.Footer)
	return s
}
