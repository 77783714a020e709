// Package render turns a piece's color tuple into a small diagram.
//
// Render builds a Drawing, a plain list of filled polygons in model
// coordinates (y grows upwards). It performs no I/O; the exporters in this
// package write a Drawing as SVG, PNG or an ANSI terminal preview.
package render

import (
	"fmt"
	"math"

	"github.com/coolbeans/memodrill/pkg/cube"
)

// Point is a position in model coordinates.
type Point struct {
	X, Y float64
}

// Facet is one filled sticker outline.
type Facet struct {
	// Slot is the tuple index this facet shows.
	Slot   int
	Points []Point
	Fill   cube.Color
	// Alpha is the fill opacity in [0,1].
	Alpha float64
}

// Drawing is the renderer output handed to a display or export collaborator.
type Drawing struct {
	Piece  cube.PieceType
	Tuple  cube.Tuple
	Facets []Facet
	// Min and Max bound the model coordinates of every facet.
	Min, Max Point
}

// Width returns the model-space width of the drawing.
func (d *Drawing) Width() float64 {
	return d.Max.X - d.Min.X
}

// Height returns the model-space height of the drawing.
func (d *Drawing) Height() float64 {
	return d.Max.Y - d.Min.Y
}

// Facet alphas for corners: top, right, left. Only the contrast matters.
const (
	topAlpha   = 1.0
	rightAlpha = 0.8
	leftAlpha  = 0.5
)

// Render draws tuple as piece type p.
//
// Edges are two stacked unit squares: slot 0 below, slot 1 on top. Corners
// are an isometric cube corner around the origin: slot 0 is the top facet,
// slot 1 the right facet and slot 2 the left facet, which is the clockwise
// order of the lettered sticker's neighbours.
func Render(tuple cube.Tuple, p cube.PieceType) (*Drawing, error) {
	if !tuple.Fits(p) {
		return nil, fmt.Errorf("cannot render %d-color tuple %s as %s", tuple.Len(), tuple, p)
	}

	switch p {
	case cube.Edge:
		return renderEdge(tuple), nil
	case cube.Corner:
		return renderCorner(tuple), nil
	}
	return nil, fmt.Errorf("cannot render piece type %s", p)
}

func renderEdge(tuple cube.Tuple) *Drawing {
	return &Drawing{
		Piece: cube.Edge,
		Tuple: tuple,
		Facets: []Facet{
			{Slot: 0, Points: rect(0, -1, 1, 1), Fill: tuple.At(0), Alpha: 1},
			{Slot: 1, Points: rect(0, 0, 1, 1), Fill: tuple.At(1), Alpha: 1},
		},
		Min: Point{0, -1},
		Max: Point{1, 1},
	}
}

func renderCorner(tuple cube.Tuple) *Drawing {
	dx := math.Sqrt(3) / 2
	center := Point{0, 0}
	top := Point{0, 1}
	down := Point{0, -1}
	upperLeft, upperRight := Point{-dx, 0.5}, Point{dx, 0.5}
	lowerLeft, lowerRight := Point{-dx, -0.5}, Point{dx, -0.5}

	return &Drawing{
		Piece: cube.Corner,
		Tuple: tuple,
		Facets: []Facet{
			{Slot: 0, Points: []Point{center, upperLeft, top, upperRight}, Fill: tuple.At(0), Alpha: topAlpha},
			{Slot: 1, Points: []Point{center, upperRight, lowerRight, down}, Fill: tuple.At(1), Alpha: rightAlpha},
			{Slot: 2, Points: []Point{center, down, lowerLeft, upperLeft}, Fill: tuple.At(2), Alpha: leftAlpha},
		},
		Min: Point{-dx, -1},
		Max: Point{dx, 1},
	}
}

func rect(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
