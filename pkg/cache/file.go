package cache

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"time"
)

// entryExt is the file extension of cache entries.
const entryExt = ".entry"

// FileCache stores each entry in its own file under a directory. A file is
// an 8-byte big-endian expiry (Unix nanoseconds, zero for never) followed
// by the raw data, so PNG artifacts are stored as is.
type FileCache struct {
	dir string
}

// NewFileCache creates the directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get returns a miss for absent, truncated and expired entries, and removes
// the latter two.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < 8 {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(raw[:8])); exp != 0 && time.Now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[8:], true, nil
}

// Set writes the entry to a temporary file and renames it into place, so
// concurrent readers never see a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	buf := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(buf[:8], uint64(exp))
	copy(buf[8:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*", "*"+entryExt))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if err := os.Remove(e); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Usage describes the entries on disk.
type Usage struct {
	Entries int
	Expired int
	Bytes   int64
}

// Usage walks the cache directory. Expired entries are counted but kept.
func (c *FileCache) Usage() (Usage, error) {
	var u Usage
	entries, err := filepath.Glob(filepath.Join(c.dir, "*", "*"+entryExt))
	if err != nil {
		return u, err
	}
	now := time.Now().UnixNano()
	for _, e := range entries {
		f, err := os.Open(e)
		if err != nil {
			continue
		}
		var hdr [8]byte
		_, rerr := io.ReadFull(f, hdr[:])
		info, serr := f.Stat()
		f.Close()
		if rerr != nil || serr != nil {
			continue
		}
		u.Entries++
		u.Bytes += info.Size() - 8
		if exp := int64(binary.BigEndian.Uint64(hdr[:])); exp != 0 && now > exp {
			u.Expired++
		}
	}
	return u, nil
}

func (c *FileCache) Close() error { return nil }

// path shards entries into 256 subdirectories by key hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
