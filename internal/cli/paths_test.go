package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/srv/slidefit-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/slidefit-cache" {
		t.Errorf("c.cacheDir() = %q, want the configured directory", dir)
	}
}

func TestOptionsLayering(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.AspectRatio = "4:3"
	c.Config.Width = 1024

	opts := c.options("screen", fitFlags{width: 800, formats: "json, png"})
	if opts.AspectRatio != "4:3" {
		t.Errorf("AspectRatio = %q, want the config value", opts.AspectRatio)
	}
	if opts.Width != 800 {
		t.Errorf("Width = %v, flag should override config", opts.Width)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "png" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Params != c.Config.Fit {
		t.Error("Params should come from config")
	}
}
