package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVRoundTrip(t *testing.T) {
	for _, c := range []struct{ r, g, b uint8 }{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {200, 52, 52}, {77, 127, 196}, {0, 0, 0},
	} {
		h, s, v := RGBToHSV(float64(c.r), float64(c.g), float64(c.b))
		got := HSVToRGB(h, s, v)
		assert.InDelta(t, c.r, got.R, 1)
		assert.InDelta(t, c.g, got.G, 1)
		assert.InDelta(t, c.b, got.B, 1)
	}
}

func TestNetColorStable(t *testing.T) {
	assert.Equal(t, NetColor("HOUR_T1"), NetColor("HOUR_T1"))
	distinct := map[[3]uint8]bool{}
	for _, n := range []string{"HOUR_T0", "HOUR_T1", "HOUR_T2", "HOUR_T3", "HOUR_O0", "HOUR_O1", "HOUR_O2", "HOUR_O3"} {
		c := NetColor(n)
		distinct[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.GreaterOrEqual(t, len(distinct), 6)
	assert.Equal(t, uint8(255), NetColor("x").A)
}

func TestDim(t *testing.T) {
	d := Dim(White, 0.5)
	assert.InDelta(t, 128, d.R, 1)
	assert.Equal(t, uint8(255), d.A)
}
