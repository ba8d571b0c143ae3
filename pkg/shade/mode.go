// Package shade implements the procedural surface shaders used to color
// celestial bodies. Every shader is a pure function of the surface normal,
// the view direction and the elapsed time.
package shade

import (
	"fmt"
	"strings"
)

// Mode selects which surface shader colors a pixel.
type Mode int

const (
	Star  Mode = iota // Glowing plasma with spots and a hot rim
	Rock              // Barren rock with mineral veins and lava pockets
	Gas               // Banded gas giant with a storm
	Earth             // Oceans, continents, ice caps and clouds
	Moon              // Grey cratered regolith
)

// Modes lists every shading mode in selection order.
var Modes = [...]Mode{Star, Rock, Gas, Earth, Moon}

var modeNames = [...]string{
	Star:  "star",
	Rock:  "rock",
	Gas:   "gas",
	Earth: "earth",
	Moon:  "moon",
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= Star && m <= Moon
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// ParseMode parses a mode name (case-insensitive) or its 1-based index.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name || s == fmt.Sprint(i+1) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shading mode %q (want star, rock, gas, earth or moon)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid shading mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
