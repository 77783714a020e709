package memo

import (
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/memodrill/pkg/cube"
)

// Size is the number of orientations per piece type, and therefore the
// number of letters in a memo alphabet.
const Size = 24

// Letter is a single memo letter.
type Letter rune

// String returns the letter as a one-character string.
func (l Letter) String() string {
	return string(rune(l))
}

// Entry is one row of a table in schema order.
type Entry struct {
	Index    int
	Position string
	Tuple    cube.Tuple
	Letter   Letter
}

// Table is the read-only encoding for one piece type. It is built once by
// NewTable and never mutated afterwards, so it is safe for concurrent readers.
type Table struct {
	piece         cube.PieceType
	entries       [Size]Entry
	posToLetter   map[string]Letter
	tupleToLetter map[cube.Tuple]Letter
	letterToIndex map[Letter]int
}

// NewTable derives the position, tuple and index lookups for one piece type
// from a solved color scheme, a 24-letter alphabet and an ordered memo schema.
// Every failure wraps ErrConfiguration.
func NewTable(piece cube.PieceType, scheme cube.ColorScheme, letters string, labels []string) (*Table, error) {
	if piece.Arity() == 0 {
		return nil, configErrorf("unknown piece type %s", piece)
	}
	if err := scheme.Validate(); err != nil {
		return nil, configErrorf("%v", err)
	}
	alphabet, err := parseAlphabet(letters)
	if err != nil {
		return nil, err
	}
	if len(labels) != Size {
		return nil, configErrorf("%s schema has %d labels, want %d", piece, len(labels), Size)
	}

	t := &Table{
		piece:         piece,
		posToLetter:   make(map[string]Letter, Size),
		tupleToLetter: make(map[cube.Tuple]Letter, Size),
		letterToIndex: make(map[Letter]int, Size),
	}
	tupleOwner := make(map[cube.Tuple]string, Size)

	for i, label := range labels {
		if _, dup := t.posToLetter[label]; dup {
			return nil, configErrorf("%s schema repeats label %q", piece, label)
		}
		tuple, err := colorize(piece, scheme, label)
		if err != nil {
			return nil, err
		}
		if other, dup := tupleOwner[tuple]; dup {
			return nil, configErrorf("%s labels %q and %q both map to %s", piece, other, label, tuple)
		}
		tupleOwner[tuple] = label

		letter := alphabet[i]
		t.entries[i] = Entry{Index: i, Position: label, Tuple: tuple, Letter: letter}
		t.posToLetter[label] = letter
		t.tupleToLetter[tuple] = letter
		t.letterToIndex[letter] = i
	}

	return t, nil
}

// colorize substitutes every face letter of label with its solved color.
func colorize(piece cube.PieceType, scheme cube.ColorScheme, label string) (cube.Tuple, error) {
	if utf8.RuneCountInString(label) != piece.Arity() {
		return cube.Tuple{}, configErrorf("%s label %q must have %d face letters", piece, label, piece.Arity())
	}
	colors := make([]cube.Color, 0, piece.Arity())
	for _, r := range label {
		face, err := cube.ParseFace(r)
		if err != nil {
			return cube.Tuple{}, configErrorf("label %q: %v", label, err)
		}
		c, _ := scheme.Color(face)
		colors = append(colors, c)
	}
	tuple, err := cube.NewTuple(colors...)
	if err != nil {
		return cube.Tuple{}, configErrorf("label %q: %v", label, err)
	}
	return tuple, nil
}

func parseAlphabet(letters string) ([]Letter, error) {
	alphabet := make([]Letter, 0, Size)
	seen := make(map[Letter]bool, Size)
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return nil, configErrorf("alphabet entry %q is not an upper-case Latin letter", r)
		}
		l := Letter(r)
		if seen[l] {
			return nil, configErrorf("alphabet repeats letter %s", l)
		}
		seen[l] = true
		alphabet = append(alphabet, l)
	}
	if len(alphabet) != Size {
		return nil, configErrorf("alphabet has %d letters, want %d", len(alphabet), Size)
	}
	return alphabet, nil
}

// Piece returns the piece type this table encodes.
func (t *Table) Piece() cube.PieceType {
	return t.piece
}

// PositionLetter returns the memo letter of a schema position label.
func (t *Table) PositionLetter(label string) (Letter, error) {
	l, ok := t.posToLetter[strings.ToUpper(label)]
	if !ok {
		return 0, lookupErrorf("%s position %q is not in the schema", t.piece, label)
	}
	return l, nil
}

// TupleLetter returns the memo letter of the piece showing these colors.
func (t *Table) TupleLetter(tuple cube.Tuple) (Letter, error) {
	l, ok := t.tupleToLetter[tuple]
	if !ok {
		return 0, lookupErrorf("%s %s is not one of the %d valid tuples", t.piece, tuple, Size)
	}
	return l, nil
}

// TupleAt returns the tuple at schema index i, 0 <= i < Size.
func (t *Table) TupleAt(i int) (cube.Tuple, error) {
	if i < 0 || i >= Size {
		return cube.Tuple{}, lookupErrorf("index %d out of range [0,%d)", i, Size)
	}
	return t.entries[i].Tuple, nil
}

// Colorize returns the solved colors of a schema position label.
func (t *Table) Colorize(label string) (cube.Tuple, error) {
	l, err := t.PositionLetter(label)
	if err != nil {
		return cube.Tuple{}, err
	}
	return t.entries[t.letterToIndex[l]].Tuple, nil
}

// LetterTuple is the reverse lookup: the tuple encoded by letter l.
// Lower-case letters are accepted.
func (t *Table) LetterTuple(l Letter) (cube.Tuple, error) {
	if l >= 'a' && l <= 'z' {
		l -= 'a' - 'A'
	}
	i, ok := t.letterToIndex[l]
	if !ok {
		return cube.Tuple{}, lookupErrorf("letter %q is not in the %s alphabet", rune(l), t.piece)
	}
	return t.entries[i].Tuple, nil
}

// Entries returns every row in schema order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, Size)
	copy(out, t.entries[:])
	return out
}

// Positions returns the schema labels in order.
func (t *Table) Positions() []string {
	out := make([]string, Size)
	for i, e := range t.entries {
		out[i] = e.Position
	}
	return out
}
