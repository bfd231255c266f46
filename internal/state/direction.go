package state

import (
	"fmt"
	"strings"
)

// Direction is the text direction used for rendering. It never affects data.
type Direction int

const (
	LTR Direction = iota
	RTL
)

const (
	placeholderLTR = "Search by book title..."
	placeholderRTL = "کتاب کا عنوان تلاش کریں..."
)

// ParseDirection accepts "ltr" or "rtl" in any case; empty means LTR.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	default:
		return LTR, fmt.Errorf("unknown direction %q (want ltr or rtl)", value)
	}
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == RTL {
		return LTR
	}
	return RTL
}

// IsRTL reports whether d is right-to-left.
func (d Direction) IsRTL() bool {
	return d == RTL
}

// ButtonLabel is the caption of the direction toggle: it names the direction
// the button switches to.
func (d Direction) ButtonLabel() string {
	if d == RTL {
		return "LTR"
	}
	return "RTL"
}

// Placeholder is the localized search prompt for d.
func (d Direction) Placeholder() string {
	if d == RTL {
		return placeholderRTL
	}
	return placeholderLTR
}

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}
