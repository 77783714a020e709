// Package cube defines the fixed vocabulary of a 3x3 cube as seen by a
// blindfolded solver: face labels, sticker colors, piece types and the color
// tuples that identify a single piece orientation.
package cube

import (
	"fmt"
	"image/color"
	"strings"
)

// Face is one of the six face labels in standard notation.
type Face byte

const (
	Up    Face = 'U'
	Left  Face = 'L'
	Front Face = 'F'
	Right Face = 'R'
	Back  Face = 'B'
	Down  Face = 'D'
)

// Faces lists every face in the conventional U L F R B D order.
var Faces = []Face{Up, Left, Front, Right, Back, Down}

// ParseFace converts a face letter to a Face.
func ParseFace(r rune) (Face, error) {
	switch f := Face(r); f {
	case Up, Left, Front, Right, Back, Down:
		return f, nil
	}
	return 0, fmt.Errorf("unknown face letter %q", r)
}

// String returns the face letter.
func (f Face) String() string {
	return string(rune(f))
}

// Color is a sticker color. The zero value is not a valid color.
type Color uint8

const (
	NoColor Color = iota
	Red
	Blue
	White
	Green
	Yellow
	Orange
)

// Colors lists the six sticker colors.
var Colors = []Color{Red, Blue, White, Green, Yellow, Orange}

var colorNames = map[Color]string{
	Red:    "red",
	Blue:   "blue",
	White:  "white",
	Green:  "green",
	Yellow: "yellow",
	Orange: "orange",
}

var colorValues = map[Color]color.RGBA{
	Red:    {R: 0xd0, G: 0x1c, B: 0x1f, A: 0xff},
	Blue:   {R: 0x1f, G: 0x4f, B: 0xd1, A: 0xff},
	White:  {R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
	Green:  {R: 0x1f, G: 0xa0, B: 0x3c, A: 0xff},
	Yellow: {R: 0xf2, G: 0xd2, B: 0x1b, A: 0xff},
	Orange: {R: 0xf2, G: 0x7c, B: 0x14, A: 0xff},
}

// ParseColor converts a color name to a Color, ignoring case and surrounding space.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}

// String returns the lower-case color name.
func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Valid reports whether c is one of the six sticker colors.
func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// RGBA returns the display color used by renderers.
func (c Color) RGBA() color.RGBA {
	if v, ok := colorValues[c]; ok {
		return v
	}
	return color.RGBA{A: 0xff}
}

// ColorScheme assigns a sticker color to every face of the solved cube.
type ColorScheme map[Face]Color

// DefaultScheme returns the solved color assignment used by the trainer.
func DefaultScheme() ColorScheme {
	return ColorScheme{
		Up:    Red,
		Left:  Blue,
		Front: White,
		Right: Green,
		Back:  Yellow,
		Down:  Orange,
	}
}

// Validate checks that the scheme is a bijection between the six faces and
// the six colors.
func (s ColorScheme) Validate() error {
	if len(s) != len(Faces) {
		return fmt.Errorf("color scheme has %d faces, want %d", len(s), len(Faces))
	}
	seen := make(map[Color]Face, len(s))
	for _, f := range Faces {
		c, ok := s[f]
		if !ok {
			return fmt.Errorf("color scheme is missing face %s", f)
		}
		if !c.Valid() {
			return fmt.Errorf("face %s has invalid color %s", f, c)
		}
		if other, dup := seen[c]; dup {
			return fmt.Errorf("faces %s and %s share color %s", other, f, c)
		}
		seen[c] = f
	}
	return nil
}

// Color returns the color assigned to face f.
func (s ColorScheme) Color(f Face) (Color, bool) {
	c, ok := s[f]
	return c, ok
}

// Clone returns an independent copy of the scheme.
func (s ColorScheme) Clone() ColorScheme {
	out := make(ColorScheme, len(s))
	for f, c := range s {
		out[f] = c
	}
	return out
}
