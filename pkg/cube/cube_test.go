package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFace(t *testing.T) {
	for _, f := range Faces {
		got, err := ParseFace(rune(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFace('X')
	assert.Error(t, err)
	_, err = ParseFace('u')
	assert.Error(t, err, "face letters are upper case")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"red", Red},
		{"Blue", Blue},
		{" WHITE ", White},
		{"green", Green},
		{"yellow", Yellow},
		{"orange", Orange},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColor("purple")
	assert.Error(t, err)
}

func TestDefaultSchemeIsBijective(t *testing.T) {
	s := DefaultScheme()
	require.NoError(t, s.Validate())

	c, ok := s.Color(Up)
	require.True(t, ok)
	assert.Equal(t, Red, c)
}

func TestColorSchemeValidate(t *testing.T) {
	dup := DefaultScheme()
	dup[Down] = Red
	assert.Error(t, dup.Validate(), "two faces sharing a color")

	missing := DefaultScheme()
	delete(missing, Back)
	assert.Error(t, missing.Validate())

	invalid := DefaultScheme()
	invalid[Left] = NoColor
	assert.Error(t, invalid.Validate())
}

func TestColorSchemeClone(t *testing.T) {
	s := DefaultScheme()
	c := s.Clone()
	c[Up] = Orange
	assert.Equal(t, Red, s[Up])
}

func TestParsePieceType(t *testing.T) {
	tests := []struct {
		input string
		want  PieceType
	}{
		{"e", Edge},
		{"edge", Edge},
		{"C", Corner},
		{"corner", Corner},
	}
	for _, tt := range tests {
		got, err := ParsePieceType(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParsePieceType("center")
	assert.Error(t, err)

	assert.Equal(t, 2, Edge.Arity())
	assert.Equal(t, 3, Corner.Arity())
	assert.Equal(t, "corner", Corner.String())
}

func TestTupleIsOrderSensitiveKey(t *testing.T) {
	a := MustTuple(Red, White)
	b := MustTuple(White, Red)
	c := MustTuple(Red, White)

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)

	m := map[Tuple]string{a: "C", b: "I"}
	assert.Equal(t, "C", m[c])
	assert.Len(t, m, 2)
}

func TestNewTupleRejectsBadInput(t *testing.T) {
	_, err := NewTuple(Red)
	assert.Error(t, err)
	_, err = NewTuple(Red, Green, White, Blue)
	assert.Error(t, err)
	_, err = NewTuple(Red, NoColor)
	assert.Error(t, err)
}

func TestParseTuple(t *testing.T) {
	want := MustTuple(Red, Green, White)
	for _, input := range []string{
		"red,green,white",
		"red green white",
		"red/green/white",
		"('red', 'green', 'white')",
	} {
		got, err := ParseTuple(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseTuple("red,teal")
	assert.Error(t, err)
}

func TestTupleFormatting(t *testing.T) {
	tup := MustTuple(Red, White)
	assert.Equal(t, "(red, white)", tup.String())
	assert.Equal(t, "('red', 'white')", tup.Repr())
	assert.Equal(t, 2, tup.Len())
	assert.Equal(t, White, tup.At(1))
	assert.Equal(t, NoColor, tup.At(2))
	assert.True(t, tup.Fits(Edge))
	assert.False(t, tup.Fits(Corner))
	assert.Equal(t, []Color{Red, White}, tup.Colors())
	assert.True(t, Tuple{}.IsZero())
}
