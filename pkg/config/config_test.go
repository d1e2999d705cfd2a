package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/fit"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv(EnvPath, "")

	tests := []struct {
		name     string
		explicit string
		env      string
		want     string
	}{
		{"xdg", "", "", "/xdg/slidefit/config.toml"},
		{"env", "", "/etc/slidefit.toml", "/etc/slidefit.toml"},
		{"explicit wins", "./local.toml", "/etc/slidefit.toml", "./local.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPath, tt.env)
			got, err := Path(tt.explicit)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Path(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvPath, "")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Error("missing default file should give the defaults")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
aspect_ratio = "4:3"
width = 1024

[cache]
ttl = "90m"

[server]
addr = ":9000"

[fit.multi]
floor = 0.5
`)
	cfg, got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if cfg.AspectRatio != "4:3" || cfg.Width != 1024 {
		t.Errorf("viewport = %s @ %v", cfg.AspectRatio, cfg.Width)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("cache.ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
	if cfg.Fit.Multi.Floor != 0.5 {
		t.Errorf("fit.multi.floor = %v", cfg.Fit.Multi.Floor)
	}
	// Untouched keys keep their defaults.
	if cfg.Fit.Multi.HardFloor != fit.DefaultParams().Multi.HardFloor {
		t.Errorf("fit.multi.hard_floor = %v", cfg.Fit.Multi.HardFloor)
	}
	if cfg.Server.Timeout.Duration != 30*time.Second {
		t.Errorf("server.timeout = %v", cfg.Server.Timeout)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `width = `},
		{"unknown key", `colour = "blue"`},
		{"bad aspect", `aspect_ratio = "wide"`},
		{"bad redis", "[cache]\nredis_url = \"localhost:6379\""},
		{"bad duration", "[server]\ntimeout = \"soon\""},
		{"bad fit", "[fit.multi]\nfloor = 1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	var back Config
	if _, err := toml.Decode(buf.String(), &back); err != nil {
		t.Fatalf("decode written config: %v", err)
	}
	if back.Server.Timeout.Duration != 30*time.Second {
		t.Errorf("timeout = %v after writing", back.Server.Timeout)
	}
}
