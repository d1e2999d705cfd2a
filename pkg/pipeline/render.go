package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/observability"
	"github.com/matzehuels/slidefit/pkg/render/sink"
)

// Render encodes the snapshots of one mode in the requested formats.
func Render(ctx context.Context, mode string, snaps []flow.SlideSnapshot, records []observability.SlideRecord, formats []string, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(snaps, sink.WithJSONMode(mode), sink.WithJSONRecords(records))
		case FormatPNG:
			data, err = sink.RenderPNG(snaps, sink.WithScale(opts.Scale), sink.WithColumns(opts.Columns))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
			return nil, err
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, formats, time.Since(start), nil)
	return artifacts, nil
}
