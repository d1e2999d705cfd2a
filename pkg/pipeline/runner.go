package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidefit/pkg/cache"
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/fit"
	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → fit → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Build
	buildStart := time.Now()
	d, hash, err := Build(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Deck = d
	result.DeckHash = hash
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Slides = len(d.Slides)
	result.Stats.Figures = d.Figures()

	r.Logger.Info("built deck",
		"slides", result.Stats.Slides,
		"figures", result.Stats.Figures,
		"duration", result.Stats.BuildTime)

	// Stage 2: Fit
	fitStart := time.Now()
	allHit := true
	for _, mode := range opts.Modes() {
		b, hit, err := r.FitWithCacheInfo(ctx, d, hash, mode, opts)
		if err != nil {
			return nil, fmt.Errorf("fit %s: %w", mode, err)
		}
		allHit = allHit && hit
		if mode == ModePrint {
			result.Print = b.Slides
		} else {
			result.Screen = b.Slides
		}
		result.Records = append(result.Records, b.Records...)
	}
	result.Stats.FitTime = time.Since(fitStart)
	result.CacheInfo.FitHit = allHit
	result.Stats.Overflowing = overflowing(result)

	r.Logger.Info("fitted slides",
		"modes", opts.Modes(),
		"overflowing", result.Stats.Overflowing,
		"cached", allHit,
		"duration", result.Stats.FitTime)

	// Stage 3: Render
	renderStart := time.Now()
	renderHit := true
	for _, mode := range opts.Modes() {
		snaps, records := result.Screen, filterRecords(result.Records, mode)
		if mode == ModePrint {
			snaps = result.Print
		}
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, hash, mode, snaps, records, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		renderHit = renderHit && hit
		for format, data := range artifacts {
			result.Artifacts[ArtifactName(mode, format)] = data
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Bundle is the cached result of one fitting mode.
type Bundle struct {
	Slides  []flow.SlideSnapshot        `json:"slides"`
	Records []observability.SlideRecord `json:"records"`
}

// FitWithCacheInfo fits a deck in one mode with caching and returns cache
// hit info.
func (r *Runner) FitWithCacheInfo(ctx context.Context, d *deck.Deck, deckHash, mode string, opts Options) (Bundle, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Bundle{}, false, err
	}

	cacheKey := r.Keyer.SnapshotKey(deckHash, opts.SnapshotKeyOpts(mode))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var b Bundle
			if err := json.Unmarshal(data, &b); err == nil {
				observability.Cache().OnCacheHit(ctx, "snapshot")
				return b, true, nil // Cache hit
			}
			// If deserialization fails, fall through to refit
		}
		observability.Cache().OnCacheMiss(ctx, "snapshot")
	}

	b, err := Fit(ctx, d, mode, opts)
	if err != nil {
		return Bundle{}, false, err
	}

	if data, err := json.Marshal(b); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.SnapshotTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, "snapshot", len(data))
		}
	}
	return b, false, nil // Cache miss
}

// Fit lays the deck out and runs one fitting mode.
func Fit(ctx context.Context, d *deck.Deck, mode string, opts Options) (Bundle, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Bundle{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnFitStart(ctx, mode, len(d.Slides))
	start := time.Now()

	host, err := NewHost(d, opts)
	if err != nil {
		hooks.OnFitComplete(ctx, mode, time.Since(start), err)
		return Bundle{}, err
	}

	rec := &observability.Recorder{}
	observers := observability.MultiObserver{rec, NewLogObserver(opts.Logger)}
	if opts.Observer != nil {
		observers = append(observers, opts.Observer)
	}
	engine := fit.New(host, fit.WithObserver(observers), fit.WithParams(opts.Params))

	b := Bundle{Slides: fitSnapshot(ctx, engine, host, d.Slides, mode)}
	b.Records = rec.Last(mode)

	hooks.OnFitComplete(ctx, mode, time.Since(start), nil)
	return b, nil
}

// fitSnapshot runs one pass and snapshots the host before print hints are
// released.
func fitSnapshot(ctx context.Context, engine *fit.Engine, host *flow.Host, slides []*deck.Slide, mode string) []flow.SlideSnapshot {
	if mode != ModePrint {
		engine.RunScreenFitPass(ctx, slides)
		return host.Snapshot()
	}
	release := engine.BeginPrint(ctx, host, slides)
	defer release()
	return host.Snapshot()
}

// NewHost returns a layout host for the deck at the configured sizes.
func NewHost(d *deck.Deck, opts Options) (*flow.Host, error) {
	vp, err := opts.Viewport()
	if err != nil {
		return nil, err
	}
	return flow.New(d.Slides,
		flow.WithViewport(vp),
		flow.WithPage(geom.Size{Width: opts.PageWidth, Height: opts.PageHeight}),
	), nil
}

// RenderWithCacheInfo renders the snapshots of one mode with caching and
// returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, deckHash, mode string, snaps []flow.SlideSnapshot, records []observability.SlideRecord, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(deckHash, opts.ArtifactKeyOpts(mode, format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := Render(ctx, mode, snaps, records, missing, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		cacheKey := r.Keyer.ArtifactKey(deckHash, opts.ArtifactKeyOpts(mode, format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func filterRecords(recs []observability.SlideRecord, mode string) []observability.SlideRecord {
	var out []observability.SlideRecord
	for _, rec := range recs {
		if rec.Mode == mode {
			out = append(out, rec)
		}
	}
	return out
}

// overflowing counts slides that overflow in any mode that ran.
func overflowing(res *Result) int {
	seen := make(map[int]bool)
	for _, snaps := range [][]flow.SlideSnapshot{res.Screen, res.Print} {
		for _, s := range snaps {
			if s.Overflow > fit.DefaultOverflowTolerance {
				seen[s.Index] = true
			}
		}
	}
	return len(seen)
}
