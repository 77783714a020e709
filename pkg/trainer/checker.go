package trainer

import (
	"strings"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/memo"
)

// Checker compares typed answers with the reference letters.
type Checker struct {
	enc *memo.Encoder
}

// NewChecker returns a checker over enc.
func NewChecker(enc *memo.Encoder) *Checker {
	return &Checker{enc: enc}
}

// Reference returns the memo letter for tuple as piece type p.
func (c *Checker) Reference(tuple cube.Tuple, p cube.PieceType) (memo.Letter, error) {
	return c.enc.Letter(tuple, p)
}

// IsCorrect reports whether answer names tuple's letter, ignoring case. The
// whole answer is compared, so anything longer than one letter is wrong.
// A tuple outside the table yields an error wrapping memo.ErrLookup.
func (c *Checker) IsCorrect(tuple cube.Tuple, answer string, p cube.PieceType) (bool, error) {
	ref, err := c.Reference(tuple, p)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == strings.ToLower(ref.String()), nil
}
