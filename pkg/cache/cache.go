// Package cache stores pipeline artifacts between runs.
//
// A [Cache] is a byte store with optional expiry. [FileCache] serves the
// CLI, [RedisCache] lets several API instances share results and
// [NullCache] disables caching. Keys come from a [Keyer] so that every
// input that changes an artifact also changes its key.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// SnapshotTTL applies to measured deck snapshots.
	SnapshotTTL = 24 * time.Hour
	// ArtifactTTL applies to rendered JSON and PNG artifacts.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a key-value byte store.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SnapshotKey identifies the measured snapshots of a deck.
	SnapshotKey(deckHash string, opts SnapshotKeyOpts) string
	// ArtifactKey identifies one rendered output of a deck.
	ArtifactKey(deckHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts are the inputs that change how a deck measures.
type SnapshotKeyOpts struct {
	Mode        string  `json:"mode"`
	AspectRatio string  `json:"aspect_ratio"`
	Width       float64 `json:"width"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
	// ParamsHash is the hash of the fitting parameters.
	ParamsHash string `json:"params_hash"`
}

// ArtifactKeyOpts add the output format to the snapshot inputs.
type ArtifactKeyOpts struct {
	SnapshotKeyOpts
	Format string `json:"format"`
}

// NullCache never stores anything. It backs --no-cache runs.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
