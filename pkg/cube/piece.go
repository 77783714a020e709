package cube

import (
	"fmt"
	"strings"
)

// PieceType distinguishes edges from corners.
type PieceType uint8

const (
	Edge PieceType = iota
	Corner
)

// PieceTypes lists every piece type.
var PieceTypes = []PieceType{Edge, Corner}

// ParsePieceType accepts "e", "edge", "c" or "corner" in any case.
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "edge", "edges":
		return Edge, nil
	case "c", "corner", "corners":
		return Corner, nil
	}
	return 0, fmt.Errorf("unknown piece type %q (use edge or corner)", s)
}

// String returns "edge" or "corner".
func (p PieceType) String() string {
	switch p {
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	}
	return fmt.Sprintf("piece(%d)", uint8(p))
}

// Arity is the number of visible stickers on the piece.
func (p PieceType) Arity() int {
	switch p {
	case Edge:
		return 2
	case Corner:
		return 3
	}
	return 0
}

// MaxArity is the largest number of stickers on any piece.
const MaxArity = 3

// Tuple is the ordered list of colors showing on one piece. Tuples are
// comparable, so they can be used directly as map keys; rotations of the same
// piece are distinct tuples.
type Tuple struct {
	n      uint8
	colors [MaxArity]Color
}

// NewTuple builds a tuple of two or three valid colors.
func NewTuple(colors ...Color) (Tuple, error) {
	if len(colors) < 2 || len(colors) > MaxArity {
		return Tuple{}, fmt.Errorf("tuple needs 2 or 3 colors, got %d", len(colors))
	}
	var t Tuple
	for i, c := range colors {
		if !c.Valid() {
			return Tuple{}, fmt.Errorf("tuple slot %d has invalid color %s", i, c)
		}
		t.colors[i] = c
	}
	t.n = uint8(len(colors))
	return t, nil
}

// MustTuple is like NewTuple but panics on error. Intended for literals.
func MustTuple(colors ...Color) Tuple {
	t, err := NewTuple(colors...)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTuple reads color names separated by commas, spaces or slashes. The
// Python-style form "('red', 'white')" written by older session logs is
// accepted as well.
func ParseTuple(s string) (Tuple, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ' ', '\t', '/', '(', ')', '\'', '"':
			return true
		}
		return false
	})
	colors := make([]Color, 0, len(fields))
	for _, f := range fields {
		c, err := ParseColor(f)
		if err != nil {
			return Tuple{}, err
		}
		colors = append(colors, c)
	}
	return NewTuple(colors...)
}

// Len returns the number of colors in the tuple.
func (t Tuple) Len() int {
	return int(t.n)
}

// At returns the color in slot i.
func (t Tuple) At(i int) Color {
	if i < 0 || i >= int(t.n) {
		return NoColor
	}
	return t.colors[i]
}

// Colors returns the tuple slots as a fresh slice.
func (t Tuple) Colors() []Color {
	out := make([]Color, t.n)
	copy(out, t.colors[:t.n])
	return out
}

// IsZero reports whether t is the empty tuple.
func (t Tuple) IsZero() bool {
	return t.n == 0
}

// Fits reports whether the tuple has the arity of piece type p.
func (t Tuple) Fits(p PieceType) bool {
	return int(t.n) == p.Arity()
}

// String formats the tuple as "(red, white)".
func (t Tuple) String() string {
	return "(" + t.join(", ", "") + ")"
}

// Repr formats the tuple the way Python prints a tuple of strings, e.g.
// "('red', 'white')". Session logs use this form.
func (t Tuple) Repr() string {
	return "(" + t.join(", ", "'") + ")"
}

func (t Tuple) join(sep, quote string) string {
	var b strings.Builder
	for i := 0; i < int(t.n); i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(quote)
		b.WriteString(t.colors[i].String())
		b.WriteString(quote)
	}
	return b.String()
}
