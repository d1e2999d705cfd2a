package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	src := "intro line\r\n# Talk\n- Author: Ada\n- footer: ACME 2026\nWelcome\n## First\nbody one\n# Second\nbody two\n"

	sections, meta := Segment(src)
	require.Len(t, sections, 3)

	assert.Equal(t, SlideTitle, sections[0].Kind)
	assert.Equal(t, "Talk", sections[0].Title)
	assert.Equal(t, "Welcome\n\nintro line", sections[0].Markdown)
	assert.Equal(t, "Ada", sections[0].Meta.Author)

	assert.Equal(t, SlideContent, sections[1].Kind)
	assert.Equal(t, "First", sections[1].Title)
	assert.Equal(t, "body one", sections[1].Markdown)
	assert.Equal(t, "Second", sections[2].Title)

	assert.Equal(t, "ACME 2026", meta.Footer)
	assert.Equal(t, "Ada", meta.Author)
}

func TestSegmentWithoutHeadings(t *testing.T) {
	sections, _ := Segment("just some text\n")
	require.Len(t, sections, 1)
	assert.Equal(t, SlideTitle, sections[0].Kind)
	assert.Equal(t, "Untitled", sections[0].Title)
	assert.Equal(t, "just some text", sections[0].Markdown)
}

func TestSegmentContentOnly(t *testing.T) {
	sections, meta := Segment("stray\n## A\nx\n## B\ny")
	require.Len(t, sections, 2)
	assert.Equal(t, SlideContent, sections[0].Kind)
	assert.Equal(t, "x", sections[0].Markdown)
	assert.Equal(t, Metadata{}, meta)
}

func TestExtractTitleMetadata(t *testing.T) {
	meta, rest := ExtractTitleMetadata("* ORGANIZATION : Lab\n- date: 2026-10-16\nplain\n- other: kept")
	assert.Equal(t, "Lab", meta.Organization)
	assert.Equal(t, "2026-10-16", meta.Date)
	assert.Equal(t, "plain\n- other: kept", rest)
}

func TestTitleSlideSkeleton(t *testing.T) {
	d, err := Parse([]byte("# Deck\n- author: Ada\n- position: Lead\n\nHello\n\n## Next\ntext"))
	require.NoError(t, err)
	require.Len(t, d.Slides, 2)

	title := d.Slides[0]
	assert.True(t, title.IsTitle())
	assert.Equal(t, "1 / 2", title.PageLabel)

	kids := title.Content.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, KindTitleMeta, kids[0].Kind)
	assert.Len(t, kids[0].Children(), 2)
	assert.Equal(t, "Author", kids[0].Children()[0].Label)
	assert.Equal(t, KindBody, kids[1].Kind)

	next := d.Slides[1]
	assert.False(t, next.IsTitle())
	assert.Equal(t, next.Inner, next.Content.Parent())
}

func TestTitleSlideWithoutMetadata(t *testing.T) {
	d, err := Parse([]byte("# Deck\n\nHello\n"))
	require.NoError(t, err)
	require.Len(t, d.Slides, 1)

	kids := d.Slides[0].Content.Children()
	require.Len(t, kids, 1)
	assert.Equal(t, KindBody, kids[0].Kind)
}

func TestTitleSlideEmpty(t *testing.T) {
	d, err := Parse([]byte("# Deck\n"))
	require.NoError(t, err)
	require.Len(t, d.Slides, 1)
	assert.Empty(t, d.Slides[0].Content.Children())
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe})
	require.Error(t, err)
}
