package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// Background is the canvas color behind the facets.
var Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

var outline = color.RGBA{A: 0xff}

const (
	minRasterSize = 8
	rasterPad     = 1
)

// Rasterize paints d onto a new image whose longer side is size pixels.
// Facets get a dark outline and are shaded against the background by their
// alpha.
func Rasterize(d *Drawing, size int) (*image.RGBA, error) {
	if size < minRasterSize {
		return nil, fmt.Errorf("raster size %d is below minimum %d", size, minRasterSize)
	}
	span := math.Max(d.Width(), d.Height())
	if span <= 0 {
		return nil, fmt.Errorf("drawing has empty bounds")
	}

	scale := float64(size-2*rasterPad) / span
	w := int(math.Ceil(d.Width()*scale)) + 2*rasterPad
	h := int(math.Ceil(d.Height()*scale)) + 2*rasterPad
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	toPixel := func(p Point) (float32, float32) {
		x := rasterPad + (p.X-d.Min.X)*scale
		y := rasterPad + (d.Max.Y-p.Y)*scale
		return float32(x), float32(y)
	}

	border := math.Max(1, float64(size)/48)
	z := vector.NewRasterizer(w, h)
	for _, f := range d.Facets {
		fill(z, img, f.Points, toPixel, outline)
		fill(z, img, inset(f.Points, border/scale), toPixel, shade(f.Fill.RGBA(), f.Alpha))
	}
	return img, nil
}

// WritePNG encodes d as a PNG image.
func WritePNG(w io.Writer, d *Drawing, size int) error {
	img, err := Rasterize(d, size)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func fill(z *vector.Rasterizer, dst draw.Image, pts []Point, toPixel func(Point) (float32, float32), c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(toPixel(pts[0]))
	for _, p := range pts[1:] {
		z.LineTo(toPixel(p))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// inset shrinks a convex polygon towards its centroid by roughly d model units.
func inset(pts []Point, d float64) []Point {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	var r float64
	for _, p := range pts {
		r += math.Hypot(p.X-cx, p.Y-cy)
	}
	r /= float64(len(pts))
	if r <= d {
		return nil
	}
	k := (r - d) / r

	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{cx + (p.X-cx)*k, cy + (p.Y-cy)*k}
	}
	return out
}

// shade blends c over the background with opacity alpha.
func shade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Min(1, math.Max(0, alpha))
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*alpha + float64(bg)*(1-alpha)))
	}
	return color.RGBA{
		R: mix(c.R, Background.R),
		G: mix(c.G, Background.G),
		B: mix(c.B, Background.B),
		A: 0xff,
	}
}
