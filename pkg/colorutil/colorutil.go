// Package colorutil provides the colours used to draw copper previews.
package colorutil

import (
	"hash/fnv"
	"image/color"
	"math"
)

// Common colors.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}

	// Board is the substrate background.
	Board = color.RGBA{R: 12, G: 40, B: 22, A: 255}
	// FrontCopper and BackCopper follow the usual EDA layer colours.
	FrontCopper = color.RGBA{R: 200, G: 52, B: 52, A: 255}
	BackCopper  = color.RGBA{R: 77, G: 127, B: 196, A: 255}
	// Via is drawn over both layers.
	Via = color.RGBA{R: 220, G: 220, B: 200, A: 255}
)

// RGBToHSV converts RGB (0-255) to HSV with H in degrees 0-360 and S, V in 0-1.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC
	if maxC != 0 {
		s = diff / maxC
	}

	switch {
	case diff == 0:
		h = 0
	case maxC == r:
		h = 60 * math.Mod((g-b)/diff, 6)
	case maxC == g:
		h = 60 * ((b-r)/diff + 2)
	default:
		h = 60 * ((r-g)/diff + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}

// NetColor returns a stable, saturated colour for a net name.
func NetColor(name string) color.RGBA {
	f := fnv.New32a()
	f.Write([]byte(name))
	hue := float64(f.Sum32()%360) + 0.5
	return HSVToRGB(hue, 0.75, 0.95)
}

// Dim scales the brightness of c by k in [0, 1].
func Dim(c color.RGBA, k float64) color.RGBA {
	h, s, v := RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
	out := HSVToRGB(h, s, v*k)
	out.A = c.A
	return out
}
