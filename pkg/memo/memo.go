// Package memo builds the letter encodings used for blindfolded solving.
//
// An Encoder holds one Table per piece type. Each Table is derived from a
// solved color scheme and an ordered memo schema of 24 position labels: the
// schema order zips labels against the letter alphabet, and every label is
// translated to the colors it shows when solved. The result is three
// bijections per piece type:
//
//	position label -> letter   ("UF" -> C)
//	color tuple    -> letter   ((red, white) -> C)
//	index 0..23    -> tuple    (2 -> (red, white))
//
// Tables are immutable once built.
package memo

import (
	"errors"
	"fmt"

	"github.com/coolbeans/memodrill/pkg/cube"
)

var (
	// ErrConfiguration marks a malformed scheme, schema or alphabet. It is
	// fatal at construction time; no partial table is ever returned.
	ErrConfiguration = errors.New("invalid memo configuration")

	// ErrLookup marks a tuple, position or letter that is not one of the 24
	// valid entries for a piece type.
	ErrLookup = errors.New("memo lookup failed")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func lookupErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLookup, fmt.Sprintf(format, args...))
}

// Config describes a complete lettering system.
type Config struct {
	Name    string
	Scheme  cube.ColorScheme
	Letters string
	Edges   []string
	Corners []string
}

// Encoder holds the edge and corner tables of one lettering system.
type Encoder struct {
	name    string
	scheme  cube.ColorScheme
	edges   *Table
	corners *Table
}

// New validates cfg and builds both tables.
func New(cfg Config) (*Encoder, error) {
	edges, err := NewTable(cube.Edge, cfg.Scheme, cfg.Letters, cfg.Edges)
	if err != nil {
		return nil, fmt.Errorf("building edge table: %w", err)
	}
	corners, err := NewTable(cube.Corner, cfg.Scheme, cfg.Letters, cfg.Corners)
	if err != nil {
		return nil, fmt.Errorf("building corner table: %w", err)
	}
	return &Encoder{
		name:    cfg.Name,
		scheme:  cfg.Scheme.Clone(),
		edges:   edges,
		corners: corners,
	}, nil
}

// Default builds the Speffz encoder.
func Default() (*Encoder, error) {
	return New(DefaultConfig())
}

// MustDefault is like Default but panics if the built-in configuration is
// invalid.
func MustDefault() *Encoder {
	enc, err := Default()
	if err != nil {
		panic(err)
	}
	return enc
}

// Name returns the configured name of the lettering system.
func (e *Encoder) Name() string {
	return e.name
}

// Scheme returns a copy of the solved color scheme.
func (e *Encoder) Scheme() cube.ColorScheme {
	return e.scheme.Clone()
}

// Table returns the table for piece type p.
func (e *Encoder) Table(p cube.PieceType) *Table {
	switch p {
	case cube.Edge:
		return e.edges
	case cube.Corner:
		return e.corners
	}
	panic(fmt.Sprintf("memo: unknown piece type %d", uint8(p)))
}

// Edges returns the edge table.
func (e *Encoder) Edges() *Table {
	return e.edges
}

// Corners returns the corner table.
func (e *Encoder) Corners() *Table {
	return e.corners
}

// Letter looks up the memo letter for tuple under piece type p.
func (e *Encoder) Letter(tuple cube.Tuple, p cube.PieceType) (Letter, error) {
	return e.Table(p).TupleLetter(tuple)
}
