package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is bumped whenever the layout or artifact encoding changes.
const keyVersion = "v1"

// DefaultKeyer hashes every key input.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SnapshotKey(deckHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot:"+keyVersion, deckHash, opts)
}

func (DefaultKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+keyVersion+":"+opts.Format, deckHash, opts)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:" followed by the hash of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// ScopedKeyer namespaces another Keyer so that several deployments or
// releases can share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes the keys of inner, or of DefaultKeyer when inner
// is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SnapshotKey(deckHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(deckHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(deckHash, opts)
}
