package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAzimuthFormula(t *testing.T) {
	assert.Equal(t, 0.0, Address{}.Azimuth())
	assert.Equal(t, 6.0, Address{Slot: 1}.Azimuth())
	assert.Equal(t, -1.5, Address{Slot: 0, Subslot: -1}.Azimuth())
	assert.Equal(t, 88.5, Address{Slot: 15, Subslot: -1}.Azimuth())
	assert.Equal(t, Address{Slot: 19, Subslot: 1}.Azimuth(), Step(3, 77).Azimuth())
	assert.Equal(t, 360.0, Step(0, SubslotsPerRing).Azimuth())
}

func TestLayoutRadius(t *testing.T) {
	l := Layout{OuterRadius: 1400, Spacing: 20}
	r, az := l.ToPolar(Address{Slot: 30, Subslot: 2, Ring: 2})
	assert.Equal(t, 1360.0, r)
	assert.Equal(t, 183.0, az)
	r2, az2 := l.ToPolar(Address{Slot: 30, Subslot: 2, Ring: 2})
	assert.Equal(t, r, r2)
	assert.Equal(t, az, az2)
}

func TestValid(t *testing.T) {
	assert.NoError(t, Address{Slot: 59, Subslot: 2, Ring: 0}.Valid())
	assert.Error(t, Address{Slot: 60}.Valid())
	assert.Error(t, Address{Slot: -1}.Valid())
	assert.Error(t, Address{Ring: -1}.Valid())
}

func TestNetNames(t *testing.T) {
	assert.Equal(t, "HOUR_T3", NetName("HOUR", Tens, 3))
	assert.Equal(t, "MINUTE_O7", NetName("MINUTE", Ones, 7))

	seen := map[string]bool{}
	for _, h := range []string{"HOUR", "MINUTE"} {
		for _, k := range []DigitKind{Tens, Ones} {
			for v := 0; v < k.Digits(); v++ {
				n := NetName(h, k, v)
				assert.False(t, seen[n], "duplicate %s", n)
				seen[n] = true
			}
		}
	}
	assert.Len(t, seen, 32)
}

func TestDigit(t *testing.T) {
	assert.Equal(t, 4, Digit(Tens, 47))
	assert.Equal(t, 7, Digit(Ones, 47))
}
