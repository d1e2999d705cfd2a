package deck

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestAssetLoaderResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"talk/deck.md":          {Data: []byte("x")},
		"talk/img/wide.png":     {Data: pngBytes(t, 400, 100)},
		"shared/logo space.png": {Data: pngBytes(t, 10, 10)},
	}
	l := NewAssetLoader(fsys, "talk/deck.md")

	tests := []struct {
		raw  string
		want string
	}{
		{"img/wide.png", "talk/img/wide.png"},
		{"./img/wide.png?v=2#top", "talk/img/wide.png"},
		{"../shared/logo%20space.png", "shared/logo space.png"},
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"/abs.png", "/abs.png"},
		{"missing.png", "missing.png"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Resolve(tt.raw))
		})
	}
	assert.Equal(t, []string{"shared/logo space.png", "talk/img/wide.png"}, l.Assets())
}

func TestAssetLoaderNaturalSize(t *testing.T) {
	fsys := fstest.MapFS{
		"deck.md": {Data: []byte("x")},
		"a.png":   {Data: pngBytes(t, 320, 240)},
		"bad.png": {Data: []byte("not an image")},
	}
	l := NewAssetLoader(fsys, "deck.md")

	size, ok := l.NaturalSize("a.png")
	require.True(t, ok)
	assert.Equal(t, 320.0, size.Width)
	assert.Equal(t, 240.0, size.Height)

	_, ok = l.NaturalSize("bad.png")
	assert.False(t, ok)
	_, ok = l.NaturalSize("nope.png")
	assert.False(t, ok)
}

func TestBuilderSizesFigures(t *testing.T) {
	fsys := fstest.MapFS{
		"deck.md":    {Data: []byte("x")},
		"pics/a.png": {Data: pngBytes(t, 100, 50)},
	}
	b := NewBuilder(WithAssets(NewAssetLoader(fsys, "deck.md")))
	d, err := b.Build([]byte("## S\n![a](pics/a.png)"))
	require.NoError(t, err)

	figs := d.Slides[0].Figures()
	require.Len(t, figs, 1)
	img := figs[0].Image()
	assert.Equal(t, "pics/a.png", img.Src)
	assert.True(t, img.Loaded())
	assert.Equal(t, 2.0, img.Natural.Aspect())
}
