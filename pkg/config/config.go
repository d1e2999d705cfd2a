// Package config loads slidefit settings from a TOML file.
//
// Settings are layered: built-in defaults, then the config file, then
// command-line flags. The file lives at $XDG_CONFIG_HOME/slidefit/config.toml
// (or ~/.config/slidefit/config.toml) unless SLIDEFIT_CONFIG or --config
// names another path.
//
//	aspect_ratio = "4:3"
//	width = 1024
//
//	[print]
//	page_width = 1123
//	page_height = 794
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
//	[fit.multi]
//	floor = 0.5
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/fit"
	"github.com/matzehuels/slidefit/pkg/flow"
)

const (
	appName  = "slidefit"
	fileName = "config.toml"

	// EnvPath overrides the config file location.
	EnvPath = "SLIDEFIT_CONFIG"
)

// Config is the full settings file.
type Config struct {
	AspectRatio string  `toml:"aspect_ratio"`
	Width       float64 `toml:"width"`

	Print  PrintConfig  `toml:"print"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Fit    fit.Params   `toml:"fit"`
}

// PrintConfig is the print page size in pixels.
type PrintConfig struct {
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the XDG cache directory.
	Dir string `toml:"dir"`
	// RedisURL switches to a shared Redis cache.
	RedisURL string `toml:"redis_url"`
	// Prefix namespaces Redis keys.
	Prefix string `toml:"prefix"`
	// TTL overrides the snapshot and artifact lifetimes. Zero keeps them.
	TTL Duration `toml:"ttl"`
}

// ServerConfig configures slidefit serve.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Timeout      Duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AspectRatio: flow.DefaultAspectRatio,
		Width:       flow.DefaultWidth,
		Print: PrintConfig{
			PageWidth:  flow.DefaultPageWidth,
			PageHeight: flow.DefaultPageHeight,
		},
		Cache: CacheConfig{
			Prefix: appName + ":",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			Timeout:      Duration{30 * time.Second},
			MaxBodyBytes: 4 << 20,
		},
		Fit: fit.DefaultParams(),
	}
}

// Dir returns the config directory using the XDG standard.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the config file path: explicit if set, then SLIDEFIT_CONFIG,
// then the XDG location.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file over the defaults. A missing file at the
// default location yields the defaults; a missing file that was named
// explicitly is an error.
func Load(explicit string) (Config, string, error) {
	cfg := Default()
	path, err := Path(explicit)
	if err != nil {
		return cfg, "", err
	}
	named := explicit != "" || os.Getenv(EnvPath) != ""

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !named:
		return Default(), path, nil
	case os.IsNotExist(err):
		return cfg, path, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
	case err != nil:
		return cfg, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, path, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := flow.ViewportFor(c.AspectRatio, c.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "viewport")
	}
	if err := errors.ValidateDimension("print.page_width", c.Print.PageWidth, 160, 16384); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "print")
	}
	if err := errors.ValidateDimension("print.page_height", c.Print.PageHeight, 160, 16384); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "print")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.RedisURL != "" && !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url must start with redis:// or rediss://")
	}
	if c.Server.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.timeout must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	if err := c.Fit.Validate(); err != nil {
		return err
	}
	return nil
}

// Write encodes the config as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
