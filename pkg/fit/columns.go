package fit

import (
	"math"

	"github.com/matzehuels/slidefit/pkg/deck"
)

// Aspect thresholds used by [ChooseColumns].
const (
	tallPairAspect = 0.75
	portraitAspect = 0.9
	wideAspect     = 1.2
)

// ChooseColumns picks a column count for a figure group from the natural
// aspect ratios of its images. Unloaded images count as square; if no image
// in the group is loaded the choice falls back to the figure count alone.
func ChooseColumns(figures []*deck.Node, isTitleSlide bool) int {
	count := len(figures)
	if count <= 1 {
		return 1
	}
	if isTitleSlide {
		return min(2, count)
	}

	aspects := make([]float64, 0, count)
	loaded := false
	for _, f := range figures {
		img := f.Image()
		if img == nil || !img.Loaded() {
			aspects = append(aspects, 1)
			continue
		}
		loaded = true
		aspects = append(aspects, img.Natural.Aspect())
	}

	if !loaded {
		if count <= 3 {
			return 2
		}
		return clampInt(int(math.Round(math.Sqrt(float64(count)))), 2, 3)
	}

	portrait, wide := 0, 0
	sum := 0.0
	for _, a := range aspects {
		sum += a
		if a < portraitAspect {
			portrait++
		}
		if a >= wideAspect {
			wide++
		}
	}

	switch {
	case count == 2:
		if sum/2 < tallPairAspect {
			return 1
		}
		return 2
	case count == 3:
		if portrait >= 2 {
			return 3
		}
		return 2
	case count == 4:
		return 2
	case count <= 6:
		if wide >= (count+1)/2 {
			return 3
		}
		return 2
	default:
		return 3
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
