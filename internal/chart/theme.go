// Package chart renders field-test run charts to image files using
// gonum/plot: per-metric time series, 2-D trajectories with goal markers
// and velocity vectors, and category-grouped variants.
//
// All rendering is stateless; styling comes from an explicit Theme value
// passed to each call rather than process-wide plotting state.
package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Theme carries the styling applied to every chart produced with it.
type Theme struct {
	// Width and Height are the saved image dimensions.
	Width  vg.Length
	Height vg.Length

	// LineWidth is the stroke width for series lines.
	LineWidth vg.Length

	// VectorScale converts velocity (m/s) into drawn segment length (m)
	// for the trajectory vector overlay.
	VectorScale float64

	// MaxVectors caps how many velocity vectors are drawn per run; the
	// sampling stride is max(1, samples/MaxVectors).
	MaxVectors int
}

// DefaultTheme returns the styling used by the CLI.
func DefaultTheme() Theme {
	return Theme{
		Width:       10 * vg.Inch,
		Height:      6 * vg.Inch,
		LineWidth:   vg.Points(1),
		VectorScale: 0.25,
		MaxVectors:  30,
	}
}

// stride returns the vector sampling stride for a run of n samples.
func (t Theme) stride(n int) int {
	max := t.MaxVectors
	if max <= 0 {
		max = 30
	}
	s := n / max
	if s < 1 {
		s = 1
	}
	return s
}

// palette creates n distinct line colors spaced around the hue circle.
func palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
