// Package deck turns a markdown document into the slide content model that
// the fitting engine and the layout host operate on.
//
// # Segmentation
//
// The first level-1 heading opens the title section. Every later level-1 or
// level-2 heading opens a content slide. Lines before the first heading form
// the preamble, which is appended to the title slide body (or becomes an
// "Untitled" title slide when the document has no headings at all).
//
// Title metadata is read from "- key: value" lines in the title body for the
// keys author, organization, position, date and footer. The footer value is
// shown on every slide.
//
// # Content
//
// Slide bodies are parsed with goldmark (GitHub flavored) into a small tree
// of [Node] values:
//
//   - every image becomes a [KindFigure] whose caption is the alt text, or
//     the image title when the alt text is empty
//   - paragraphs holding nothing but figures are unwrapped: one figure
//     replaces the paragraph, several become a [KindFigureGroup]
//   - figures inside list items are lifted after the list, and list items
//     left without content are dropped
//   - runs of two or more sibling figures are wrapped in a figure group
//
// # Assets
//
// [AssetLoader] resolves relative image sources against the markdown file and
// reads their natural size with [image.DecodeConfig]. Images whose size
// cannot be determined keep a zero [Node.Natural] size, which downstream code
// treats as "not loaded yet".
package deck
