package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarCardinalDirections(t *testing.T) {
	cases := []struct {
		deg  float64
		want Point
	}{
		{0, Point{X: 0, Y: -100}},
		{90, Point{X: 100, Y: 0}},
		{180, Point{X: 0, Y: 100}},
		{270, Point{X: -100, Y: 0}},
		{360, Point{X: 0, Y: -100}},
		{-90, Point{X: -100, Y: 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Polar(100, c.deg).Round(), "azimuth %v", c.deg)
	}
}

func TestAzimuthInvertsPolar(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 1.5 {
		got := Azimuth(Polar(1000, deg))
		diff := math.Abs(got - deg)
		if diff > 180 {
			diff = 360 - diff
		}
		assert.InDelta(t, 0, diff, 1e-9, "azimuth %v", deg)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 358.5, NormalizeDegrees(-1.5))
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 1.5, NormalizeDegrees(-358.5))
	assert.Equal(t, 10.0, NormalizeDegrees(730))
}

func TestRect(t *testing.T) {
	r := CircleBounds(Point2D{X: 10, Y: 20}, 5)
	assert.Equal(t, Rect{X: 5, Y: 15, Width: 10, Height: 10}, r)
	assert.True(t, r.Contains(Point2D{X: 5, Y: 25}))
	assert.False(t, r.Contains(Point2D{X: 4.9, Y: 20}))

	assert.Equal(t, Rect{X: 3, Y: 13, Width: 14, Height: 14}, r.Inset(-2))
	assert.True(t, r.Inset(-2).Contains(Point2D{X: 4, Y: 20}))
	assert.False(t, r.Inset(1).Contains(Point2D{X: 5.5, Y: 20}))
}
