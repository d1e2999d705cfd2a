package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidefit/pkg/buildinfo"
	"github.com/matzehuels/slidefit/pkg/cache"
	"github.com/matzehuels/slidefit/pkg/config"
	"github.com/matzehuels/slidefit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "slidefit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is the loaded settings file, or the defaults before loading.
	Config config.Config

	configPath string
	loadedFrom string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the settings file named by --config, SLIDEFIT_CONFIG or
// the XDG location.
func (c *CLI) loadConfig() error {
	cfg, path, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.loadedFrom = path
	c.Logger.Debug("config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Entries are scoped per release.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	r := pipeline.NewRunner(backend, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache picks Redis when configured, then the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: url, Prefix: c.Config.Cache.Prefix})
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/slidefit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// fitFlags are the viewport and render flags shared by fit, print and watch.
type fitFlags struct {
	aspectRatio string
	width       float64
	pageWidth   float64
	pageHeight  float64
	formats     string
	scale       float64
	columns     int
	output      string
	noCache     bool
	refresh     bool
}

// options merges config and flags into pipeline options. Flags left at
// their zero value fall back to the config file.
func (c *CLI) options(mode string, f fitFlags) pipeline.Options {
	opts := pipeline.Options{
		Mode:        mode,
		AspectRatio: c.Config.AspectRatio,
		Width:       c.Config.Width,
		PageWidth:   c.Config.Print.PageWidth,
		PageHeight:  c.Config.Print.PageHeight,
		Params:      c.Config.Fit,
		Formats:     parseFormats(f.formats),
		Scale:       f.scale,
		Columns:     f.columns,
		Refresh:     f.refresh,
		Logger:      c.Logger,
	}
	if f.aspectRatio != "" {
		opts.AspectRatio = f.aspectRatio
	}
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.pageWidth > 0 {
		opts.PageWidth = f.pageWidth
	}
	if f.pageHeight > 0 {
		opts.PageHeight = f.pageHeight
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
