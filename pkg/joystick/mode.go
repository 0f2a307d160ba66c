package joystick

import (
	"fmt"
	"strings"
)

// MovementMode determines the cursor behavior at the edge of the grid.
type MovementMode int

const (
	// Wrap moves the cursor to the opposite edge.
	Wrap MovementMode = iota
	// Clamp stops the cursor at the edge.
	Clamp
)

// String returns the configuration name of the mode.
func (m MovementMode) String() string {
	switch m {
	case Wrap:
		return "wrap"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("MovementMode(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in configuration files.
func ParseMode(s string) (MovementMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap":
		return Wrap, nil
	case "clamp":
		return Clamp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// stepFunc applies a delta of -1, 0 or 1 to one coordinate.
type stepFunc func(v, d int) int

func (m MovementMode) step() (stepFunc, error) {
	switch m {
	case Wrap:
		return wrapStep, nil
	case Clamp:
		return clampStep, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}
}

func wrapStep(v, d int) int {
	return ((v+d)%GridSize + GridSize) % GridSize
}

func clampStep(v, d int) int {
	v += d
	switch {
	case v < 0:
		return 0
	case v >= GridSize:
		return GridSize - 1
	default:
		return v
	}
}
