package sink

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/slidefit/pkg/errors"
)

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sampleSnapshots(), WithScale(0.25), WithColumns(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	// 2 columns of 320px plus three 16px gaps, one row of 180px plus two gaps.
	if b := img.Bounds(); b.Dx() != 688 || b.Dy() != 212 {
		t.Errorf("size = %dx%d, want 688x212", b.Dx(), b.Dy())
	}

	// The content box of the overflowing slide is outlined in red.
	r, g, _, _ := img.At(16+336+12, 16+40+65).RGBA()
	if r>>8 < 200 || g>>8 > 60 {
		t.Errorf("overflow outline color = (%d, %d), want red", r>>8, g>>8)
	}
}

func TestRenderPNGErrors(t *testing.T) {
	if _, err := RenderPNG(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG(nil) error = %v, want INVALID_INPUT", err)
	}
	if _, err := RenderPNG(sampleSnapshots(), WithScale(0)); err == nil {
		t.Error("RenderPNG with zero scale should fail")
	}
	if _, err := RenderPNG(sampleSnapshots(), WithScale(100)); err == nil {
		t.Error("RenderPNG with a huge sheet should fail")
	}
}
