package camera

import (
	"fmt"
	"strings"
)

// Position selects which physical camera is used.
type Position int

const (
	Back Position = iota
	Front
)

func (p Position) String() string {
	switch p {
	case Back:
		return "back"
	case Front:
		return "front"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition accepts "back" (or its alias "rear") and "front", case
// insensitive.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "back", "rear":
		return Back, nil
	case "front":
		return Front, nil
	default:
		return Back, fmt.Errorf("unknown camera position %q", s)
	}
}
