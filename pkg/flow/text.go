package flow

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMeasurer reports the advance width of a string at a font size.
type TextMeasurer interface {
	Advance(s string, size float64) float64
}

// FaceMeasurer measures text with a fixed font.Face scaled from its design
// size.
type FaceMeasurer struct {
	Face       font.Face
	DesignSize float64
}

// DefaultMeasurer measures with the 7x13 basic font, so every rune advances
// 7/13 of the font size.
func DefaultMeasurer() FaceMeasurer {
	return FaceMeasurer{Face: basicfont.Face7x13, DesignSize: 13}
}

func (m FaceMeasurer) Advance(s string, size float64) float64 {
	adv := font.MeasureString(m.Face, s)
	return float64(adv) / 64 * size / m.DesignSize
}

// wrap counts the lines text occupies at the given width and returns the
// widest line. Words longer than the width get a line of their own.
func wrap(m TextMeasurer, text string, width, size float64) (lines int, widest float64) {
	if strings.TrimSpace(text) == "" {
		return 0, 0
	}
	space := m.Advance(" ", size)
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines++
			continue
		}
		lineW := -1.0
		for _, w := range words {
			ww := m.Advance(w, size)
			switch {
			case lineW < 0:
				lineW = ww
				lines++
			case lineW+space+ww <= width:
				lineW += space + ww
			default:
				widest = max(widest, lineW)
				lineW = ww
				lines++
			}
		}
		widest = max(widest, lineW)
	}
	return lines, widest
}
