package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/pipeline"
	"github.com/matzehuels/slidefit/pkg/render/sink"
	"github.com/matzehuels/slidefit/pkg/schedule"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		f    fitFlags
		mode string
	)

	cmd := &cobra.Command{
		Use:   "watch [deck.md]",
		Short: "Refit a deck whenever it or its images change",
		Long: `Refit a deck whenever it or its images change.

The deck is fitted once on start. Every write to the markdown file or to an
image it references schedules a refit, which rewrites the outputs and logs
slides that still overflow. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], mode, f)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", pipeline.ModeScreen, "fitting mode: screen, print, both")
	addFitFlags(cmd, &f)
	return cmd
}

// runWatch fits input on every relevant file change until ctx is done.
func (c *CLI) runWatch(ctx context.Context, input, mode string, f fitFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(mode, f)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dw := newDeckWatcher(runner, input, f.output, opts, c.Logger)
	for _, dir := range dw.dirs() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	sched := schedule.New(func(ctx context.Context) {
		dw.pass(ctx)
		for _, dir := range dw.dirs() {
			if err := watcher.Add(dir); err != nil {
				c.Logger.Warn("watch directory", "dir", dir, "error", err)
			}
		}
	}, schedule.WithContext(ctx))
	defer sched.Stop()

	printInfo("Watching %s", StyleHighlight.Render(input))
	sched.Trigger()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !dw.relevant(event.Name) {
				continue
			}
			c.Logger.Debug("change", "path", event.Name, "op", event.Op.String())
			sched.Trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher", "error", err)
		}
	}
}

// deckWatcher refits one deck and tracks the files it depends on.
type deckWatcher struct {
	runner *pipeline.Runner
	input  string
	output string
	opts   pipeline.Options
	logger *log.Logger

	mu       sync.Mutex
	deps     map[string]bool
	lastHash string
}

func newDeckWatcher(runner *pipeline.Runner, input, output string, opts pipeline.Options, logger *log.Logger) *deckWatcher {
	w := &deckWatcher{
		runner: runner,
		input:  input,
		output: output,
		opts:   opts,
		logger: logger,
	}
	w.deps = map[string]bool{w.abs(input): true}
	return w
}

// relevant reports whether a change to path affects the deck.
func (w *deckWatcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deps[w.abs(path)]
}

// dirs returns the directories holding the deck and its assets.
func (w *deckWatcher) dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for p := range w.deps {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	return out
}

// pass refits the deck and rewrites the outputs when anything changed.
func (w *deckWatcher) pass(ctx context.Context) {
	in, err := deckInput(w.input)
	if err != nil {
		w.logger.Error("read deck", "error", err)
		return
	}

	prog := newProgress(w.logger)
	res, err := w.runner.Execute(ctx, in, w.opts)
	if err != nil {
		w.logger.Error("refit failed", "error", err)
		return
	}

	base := filepath.Dir(w.input)
	w.mu.Lock()
	for _, asset := range pipeline.Assets(in) {
		w.deps[w.abs(filepath.Join(base, filepath.FromSlash(asset)))] = true
	}
	unchanged := res.DeckHash == w.lastHash
	w.lastHash = res.DeckHash
	w.mu.Unlock()
	if unchanged {
		return
	}

	paths, err := writeArtifacts(res.Artifacts, w.input, w.output)
	if err != nil {
		w.logger.Error("write outputs", "error", err)
		return
	}
	prog.done(fmt.Sprintf("Fitted %d slides", res.Stats.Slides))
	for _, p := range paths {
		w.logger.Debug("wrote", "path", p)
	}
	logOverflow(w.logger, res.Screen, pipeline.ModeScreen)
	logOverflow(w.logger, res.Print, pipeline.ModePrint)
}

func (w *deckWatcher) abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

// logOverflow logs one warning per slide that still overflows.
func logOverflow(logger *log.Logger, slides []flow.SlideSnapshot, mode string) {
	for _, idx := range sink.Summarize(slides).Overflowing {
		s := slides[idx]
		logger.Warn("slide overflows",
			"mode", mode,
			"slide", s.PageLabel,
			"title", s.Title,
			"overflow", fmt.Sprintf("%.0fpx", s.Overflow))
	}
}
