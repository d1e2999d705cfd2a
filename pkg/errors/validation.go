package errors

import (
	"io/fs"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAspectRatio parses a "W:H" ratio such as "16:9" or "4:3".
// Both parts must be positive finite numbers.
func ParseAspectRatio(s string) (w, h float64, err error) {
	if s == "" {
		return 0, 0, New(ErrCodeInvalidAspectRatio, "aspect ratio cannot be empty")
	}
	left, right, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, New(ErrCodeInvalidAspectRatio, "aspect ratio %q must look like W:H", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(left), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if errW != nil || errH != nil || !positive(w) || !positive(h) {
		return 0, 0, New(ErrCodeInvalidAspectRatio, "aspect ratio %q must have two positive numbers", s)
	}
	return w, h, nil
}

// ValidateDimension checks that a pixel dimension lies in [min, max].
func ValidateDimension(name string, v, min, max float64) error {
	if math.IsNaN(v) || v < min || v > max {
		return New(ErrCodeInvalidInput, "%s must be between %g and %g, got %g", name, min, max, v)
	}
	return nil
}

// maxPathLen bounds paths accepted from API requests.
const maxPathLen = 500

// ValidatePath checks a deck or asset path supplied by a client. The path
// must be a valid [fs.FS] name: slash-separated, relative and without "."
// or ".." elements. Backslashes and control characters are rejected too.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLen:
		return New(ErrCodeInvalidPath, "path longer than %d bytes", maxPathLen)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains control characters")
	case strings.ContainsRune(path, '\\'):
		return New(ErrCodeInvalidPath, "path %q must use forward slashes", path)
	case !fs.ValidPath(path):
		return New(ErrCodeInvalidPath, "path %q must be relative and stay inside the deck root", path)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
