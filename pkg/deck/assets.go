package deck

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/slidefit/pkg/geom"
)

var externalSrc = regexp.MustCompile(`(?i)^(https?:|data:|blob:|/)`)

// AssetLoader resolves image sources relative to a markdown file inside a
// file system and reads their natural size.
type AssetLoader struct {
	fsys   fs.FS
	mdPath string

	mu    sync.Mutex
	sizes map[string]geom.Size
	used  map[string]struct{}
}

// NewAssetLoader returns a loader for the markdown file at mdPath within fsys.
// mdPath uses forward slashes, as fs.FS paths do.
func NewAssetLoader(fsys fs.FS, mdPath string) *AssetLoader {
	return &AssetLoader{
		fsys:   fsys,
		mdPath: normalizePath(mdPath),
		sizes:  make(map[string]geom.Size),
		used:   make(map[string]struct{}),
	}
}

// Resolve maps a raw image source to a path inside the loader's file system.
// External and absolute sources, and sources that do not exist, are returned
// unchanged.
func (l *AssetLoader) Resolve(raw string) string {
	if raw == "" || externalSrc.MatchString(raw) {
		return raw
	}
	clean := strings.SplitN(raw, "#", 2)[0]
	clean = strings.SplitN(clean, "?", 2)[0]
	if decoded, err := url.PathUnescape(clean); err == nil {
		clean = decoded
	}

	dir := path.Dir(l.mdPath)
	if dir == "." {
		dir = ""
	}
	candidates := []string{normalizePath(path.Join(dir, clean)), normalizePath(clean)}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := fs.Stat(l.fsys, c); err == nil {
			l.mu.Lock()
			l.used[c] = struct{}{}
			l.mu.Unlock()
			return c
		}
	}
	return raw
}

// NaturalSize returns the natural size of the image at p. Results are memoized per
// loader, so a loader should be recreated when assets change on disk.
func (l *AssetLoader) NaturalSize(p string) (geom.Size, bool) {
	if externalSrc.MatchString(p) {
		return geom.Size{}, false
	}
	l.mu.Lock()
	size, ok := l.sizes[p]
	l.mu.Unlock()
	if ok {
		return size, !size.IsZero()
	}

	size = l.decode(p)
	l.mu.Lock()
	l.sizes[p] = size
	l.mu.Unlock()
	return size, !size.IsZero()
}

func (l *AssetLoader) decode(p string) geom.Size {
	f, err := l.fsys.Open(p)
	if err != nil {
		return geom.Size{}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return geom.Size{}
	}
	return geom.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}
}

// Assets returns the local asset paths resolved so far, sorted.
func (l *AssetLoader) Assets() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.used))
	for p := range l.used {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// normalizePath collapses "." and ".." segments and backslashes.
func normalizePath(p string) string {
	parts := strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}
	return strings.Join(stack, "/")
}
