// Package pipeline provides the build → fit → render pipeline of slidefit.
//
// The same pipeline backs the CLI, the watch loop and the HTTP API, so
// every entry point builds, fits and renders a deck the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: segment the markdown into slides, render each slide body and
//     size the referenced images
//  2. Fit: lay the deck out with a [flow.Host] and run the screen pass, the
//     print pass or both, then snapshot the measured slides
//  3. Render: encode the snapshots as JSON and/or a PNG contact sheet
//
// Snapshots and artifacts are cached by the hash of the deck (markdown plus
// decoded image sizes) and every option that changes the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Input{
//	    Markdown: src,
//	    FS:       os.DirFS(dir),
//	    Path:     "talk.md",
//	}, pipeline.Options{
//	    Mode:    pipeline.ModeBoth,
//	    Formats: []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidefit/pkg/cache"
	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/fit"
	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/geom"
	"github.com/matzehuels/slidefit/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and Watch
// =============================================================================

const (
	// DefaultAspectRatio is the default slide aspect ratio.
	DefaultAspectRatio = flow.DefaultAspectRatio

	// DefaultWidth is the default slide width in pixels.
	DefaultWidth = flow.DefaultWidth

	// DefaultPageWidth and DefaultPageHeight are an A4 landscape page.
	DefaultPageWidth  = flow.DefaultPageWidth
	DefaultPageHeight = flow.DefaultPageHeight

	// DefaultScale is the default PNG slide scale.
	DefaultScale = 0.5

	// DefaultColumns is the default number of slides per PNG row.
	DefaultColumns = 2
)

// Fitting modes.
const (
	ModeScreen = observability.ModeScreen
	ModePrint  = observability.ModePrint
	ModeBoth   = "both"
)

// DefaultMode is the default fitting mode.
const DefaultMode = ModeScreen

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatPNG:  true,
}

// ValidModes is the set of supported fitting modes.
var ValidModes = map[string]bool{
	ModeScreen: true,
	ModePrint:  true,
	ModeBoth:   true,
}

// =============================================================================
// Input and Options
// =============================================================================

// Input is the deck source.
type Input struct {
	// Markdown is the deck source.
	Markdown []byte
	// FS resolves images relative to Path. Nil disables image probing.
	FS fs.FS
	// Path is the markdown file's path within FS.
	Path string
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fit options
	Mode        string     `json:"mode,omitempty"`
	AspectRatio string     `json:"aspect_ratio,omitempty"`
	Width       float64    `json:"width,omitempty"`
	PageWidth   float64    `json:"page_width,omitempty"`
	PageHeight  float64    `json:"page_height,omitempty"`
	Params      fit.Params `json:"-"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Columns int      `json:"columns,omitempty"`

	// Refresh bypasses cached snapshots and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger               `json:"-"`
	Observer observability.FitObserver `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Deck is the built deck.
	Deck *deck.Deck

	// DeckHash is the content hash of the markdown and decoded images.
	DeckHash string

	// Screen and Print hold the snapshots of each mode that ran.
	Screen []flow.SlideSnapshot
	Print  []flow.SlideSnapshot

	// Records are the slide records of the passes that ran.
	Records []observability.SlideRecord

	// Artifacts contains rendered outputs keyed by format, with print
	// outputs prefixed "print.".
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides      int
	Figures     int
	Overflowing int
	BuildTime   time.Duration
	FitTime     time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FitHit    bool // Whether every snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a fitting mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: screen, print, both)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetFitDefaults()
	o.SetRenderDefaults()
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if _, err := o.Viewport(); err != nil {
		return err
	}
	if err := errors.ValidateDimension("page_width", o.PageWidth, 160, 16384); err != nil {
		return err
	}
	if err := errors.ValidateDimension("page_height", o.PageHeight, 160, 16384); err != nil {
		return err
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > 4 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 4], got %v", o.Scale)
	}
	o.validated = true
	return nil
}

// SetFitDefaults sets default values for fitting.
func (o *Options) SetFitDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.AspectRatio == "" {
		o.AspectRatio = DefaultAspectRatio
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.PageWidth == 0 {
		o.PageWidth = DefaultPageWidth
	}
	if o.PageHeight == 0 {
		o.PageHeight = DefaultPageHeight
	}
	if o.Params == (fit.Params{}) {
		o.Params = fit.DefaultParams()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
}

// Viewport returns the screen slide size.
func (o *Options) Viewport() (geom.Size, error) {
	return flow.ViewportFor(o.AspectRatio, o.Width)
}

// Modes returns the fitting modes to run, screen first.
func (o *Options) Modes() []string {
	switch o.Mode {
	case ModeBoth:
		return []string{ModeScreen, ModePrint}
	case ModePrint:
		return []string{ModePrint}
	default:
		return []string{ModeScreen}
	}
}

// SnapshotKeyOpts returns cache key options for one fitting mode.
func (o *Options) SnapshotKeyOpts(mode string) cache.SnapshotKeyOpts {
	k := cache.SnapshotKeyOpts{
		Mode:       mode,
		ParamsHash: paramsHash(o.Params),
	}
	if mode == ModePrint {
		k.PageWidth, k.PageHeight = o.PageWidth, o.PageHeight
	} else {
		k.AspectRatio, k.Width = o.AspectRatio, o.Width
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
func (o *Options) ArtifactKeyOpts(mode, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{SnapshotKeyOpts: o.SnapshotKeyOpts(mode), Format: format}
	if format == FormatPNG {
		k.Format = fmt.Sprintf("%s@%gx%d", format, o.Scale, o.Columns)
	}
	return k
}

// ArtifactName returns the Result.Artifacts key for a mode and format.
func ArtifactName(mode, format string) string {
	if mode == ModePrint {
		return "print." + format
	}
	return format
}

// paramsHash identifies a parameter set in cache keys.
func paramsHash(p fit.Params) string {
	data, _ := json.Marshal(p)
	return cache.Hash(data)[:16]
}
