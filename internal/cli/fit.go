package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/pipeline"
	"github.com/matzehuels/slidefit/pkg/render/sink"
)

// fitCommand creates the fit command.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		f    fitFlags
		mode string
	)

	cmd := &cobra.Command{
		Use:   "fit [deck.md]",
		Short: "Fit a markdown deck and write slide snapshots",
		Long: `Fit a markdown deck and write slide snapshots.

Each slide is laid out for the viewport, figures are scaled until the slide
fits, and lone media is centered. The result is written as JSON snapshots
(-f json) and/or a PNG contact sheet (-f png) next to the deck, or to -o.

Use --mode print (or the 'print' command) to fit for the printed page, and
--mode both for both passes.

Results are cached locally; images are part of the cache key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFit(cmd.Context(), args[0], mode, f)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", pipeline.ModeScreen, "fitting mode: screen, print, both")
	addFitFlags(cmd, &f)
	return cmd
}

// printCommand creates the print command, a shortcut for fit --mode print.
func (c *CLI) printCommand() *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "print [deck.md]",
		Short: "Fit a markdown deck for the printed page",
		Long: `Fit a markdown deck for the printed page.

Every slide with figures is paginated onto one page: figures shrink
uniformly and spacing is trimmed until the page fits. Slides without figures
are left as they are. Outputs are named <deck>.print.json and <deck>.print.png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFit(cmd.Context(), args[0], pipeline.ModePrint, f)
		},
	}

	addFitFlags(cmd, &f)
	return cmd
}

func addFitFlags(cmd *cobra.Command, f *fitFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single artifact) or base path")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), png (comma-separated)")
	cmd.Flags().StringVarP(&f.aspectRatio, "aspect", "a", "", "screen aspect ratio W:H (default from config, 16:9)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "screen viewport width in pixels")
	cmd.Flags().Float64Var(&f.pageWidth, "page-width", 0, "print page width in pixels")
	cmd.Flags().Float64Var(&f.pageHeight, "page-height", 0, "print page height in pixels")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG contact sheet scale (default 0.5)")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "PNG contact sheet columns (default 2)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and refit")
}

// runFit builds, fits and renders the deck at input.
func (c *CLI) runFit(ctx context.Context, input, mode string, f fitFlags) error {
	in, err := deckInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(mode, f)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Fitting %s...", filepath.Base(input)))
	spin.Start()

	res, err := runner.Execute(ctx, in, opts)
	if err != nil {
		spin.StopWithError("Fit failed")
		return err
	}
	spin.Stop()

	paths, err := writeArtifacts(res.Artifacts, input, f.output)
	if err != nil {
		return err
	}

	printSuccess("Fitted %s", StyleHighlight.Render(filepath.Base(input)))
	printStats(res.Stats, res.CacheInfo.FitHit)
	for _, p := range paths {
		printFile(p)
	}
	reportOverflow(res.Screen, pipeline.ModeScreen)
	reportOverflow(res.Print, pipeline.ModePrint)
	return nil
}

// deckInput reads a markdown deck and roots image lookups at its directory.
func deckInput(path string) (pipeline.Input, error) {
	md, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return pipeline.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck %s does not exist", path)
	}
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return pipeline.Input{
		Markdown: md,
		FS:       os.DirFS(filepath.Dir(path)),
		Path:     filepath.Base(path),
	}, nil
}

// writeArtifacts writes each artifact next to the deck, or to output.
// A single artifact with an explicit output is written to exactly that path.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		path := artifactPath(input, output, name, len(names))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// artifactPath names an output file. name is a pipeline artifact name such
// as "json" or "print.png".
func artifactPath(input, output, name string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + name
}

// basePath derives the base output path from the output and input file paths.
// Known artifact extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// reportOverflow warns about slides that still overflow after fitting.
func reportOverflow(slides []flow.SlideSnapshot, mode string) {
	if len(slides) == 0 {
		return
	}
	sum := sink.Summarize(slides)
	for _, idx := range sum.Overflowing {
		s := slides[idx]
		printWarning("%s: slide %s %q overflows by %.0fpx", mode, s.PageLabel, s.Title, s.Overflow)
	}
	if sum.OutOfBounds > 0 {
		printWarning("%s: %d figure(s) extend past their slide", mode, sum.OutOfBounds)
	}
}
