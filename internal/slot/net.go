package slot

import "fmt"

// DigitKind selects one of the two multiplexing address lines.
type DigitKind int

const (
	Tens DigitKind = iota
	Ones
)

func (k DigitKind) String() string {
	switch k {
	case Tens:
		return "tens"
	case Ones:
		return "ones"
	default:
		return "unknown"
	}
}

// Letter is the single-letter tag used in net names.
func (k DigitKind) Letter() string {
	if k == Tens {
		return "T"
	}
	return "O"
}

// Digits returns how many values the kind takes (6 tens, 10 ones).
func (k DigitKind) Digits() int {
	if k == Tens {
		return SlotsPerRing / 10
	}
	return 10
}

// Digit returns the digit of kind k selecting LED slot s.
func Digit(k DigitKind, s int) int {
	if k == Tens {
		return s / 10
	}
	return s % 10
}

// NetName returns the net carrying one address line of a hand. Hand names
// are unique, so names never collide.
func NetName(hand string, k DigitKind, value int) string {
	return fmt.Sprintf("%s_%s%d", hand, k.Letter(), value)
}
