package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/slidefit/pkg/cache"
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/observability"
)

// Build parses the markdown into a deck and returns the deck hash. The hash
// covers the markdown and the natural size of every decoded image, so
// replacing an image changes it.
func Build(ctx context.Context, in Input) (*deck.Deck, string, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, in.Path)
	start := time.Now()

	if len(bytes.TrimSpace(in.Markdown)) == 0 {
		err := errors.New(errors.ErrCodeInvalidInput, "markdown is empty")
		hooks.OnBuildComplete(ctx, in.Path, 0, time.Since(start), err)
		return nil, "", err
	}

	var (
		opts   []deck.Option
		loader *deck.AssetLoader
	)
	if in.FS != nil {
		loader = deck.NewAssetLoader(in.FS, in.Path)
		opts = append(opts, deck.WithAssets(loader))
	}
	d, err := deck.NewBuilder(opts...).Build(in.Markdown)
	if err != nil {
		hooks.OnBuildComplete(ctx, in.Path, 0, time.Since(start), err)
		return nil, "", err
	}

	var h bytes.Buffer
	h.Write(in.Markdown)
	if loader != nil {
		for _, p := range loader.Assets() {
			size, _ := loader.NaturalSize(p)
			fmt.Fprintf(&h, "\x00%s=%gx%g", p, size.Width, size.Height)
		}
	}

	hooks.OnBuildComplete(ctx, in.Path, len(d.Slides), time.Since(start), nil)
	return d, cache.Hash(h.Bytes()), nil
}

// Assets returns the local image paths the deck references, relative to the
// input FS. Watch mode uses it to decide which file events matter.
func Assets(in Input) []string {
	if in.FS == nil {
		return nil
	}
	loader := deck.NewAssetLoader(in.FS, in.Path)
	if _, err := deck.NewBuilder(deck.WithAssets(loader)).Build(in.Markdown); err != nil {
		return nil
	}
	return loader.Assets()
}
