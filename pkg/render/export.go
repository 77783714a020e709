package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSVG writes d as a standalone SVG document whose longer side is size
// user units.
func WriteSVG(w io.Writer, d *Drawing, size int) error {
	span := d.Height()
	if d.Width() > span {
		span = d.Width()
	}
	if span <= 0 || size <= 0 {
		return fmt.Errorf("cannot write SVG of size %d", size)
	}
	scale := float64(size) / span
	width, height := d.Width()*scale, d.Height()*scale

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.3f %.3f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="#%02x%02x%02x"/>`+"\n",
		Background.R, Background.G, Background.B)
	for _, f := range d.Facets {
		pts := make([]string, len(f.Points))
		for i, p := range f.Points {
			pts[i] = fmt.Sprintf("%.3f,%.3f", (p.X-d.Min.X)*scale, (d.Max.Y-p.Y)*scale)
		}
		c := f.Fill.RGBA()
		fmt.Fprintf(bw, `  <polygon data-slot="%d" points="%s" fill="#%02x%02x%02x" fill-opacity="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
			f.Slot, strings.Join(pts, " "), c.R, c.G, c.B, f.Alpha, scale/48)
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// WriteANSI prints d to a 24-bit color terminal using upper half blocks, so
// each character cell shows two vertically stacked pixels. cols is the width
// of the longer side in characters.
func WriteANSI(w io.Writer, d *Drawing, cols int) error {
	img, err := Rasterize(d, cols)
	if err != nil {
		return err
	}
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := Background
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		bw.WriteString("\x1b[0m\n")
	}
	return bw.Flush()
}

var cornerFacetNames = []string{"top", "right", "left"}
var edgeFacetNames = []string{"bottom", "top"}

// Describe returns a plain-text rendering such as "top: red, right: green,
// left: white", for terminals without color.
func Describe(d *Drawing) string {
	names := edgeFacetNames
	if d.Piece.Arity() == 3 {
		names = cornerFacetNames
	}
	parts := make([]string, 0, len(d.Facets))
	for _, f := range d.Facets {
		label := fmt.Sprintf("slot %d", f.Slot)
		if f.Slot < len(names) {
			label = names[f.Slot]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, f.Fill))
	}
	return strings.Join(parts, ", ")
}
