package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEdge(t *testing.T) {
	tuple := cube.MustTuple(cube.Red, cube.White)
	d, err := Render(tuple, cube.Edge)
	require.NoError(t, err)

	require.Len(t, d.Facets, 2)
	assert.Equal(t, cube.Red, d.Facets[0].Fill)
	assert.Equal(t, cube.White, d.Facets[1].Fill)
	assert.Equal(t, Point{0, -1}, d.Facets[0].Points[0], "slot 0 is the lower square")
	assert.Equal(t, Point{0, 0}, d.Facets[1].Points[0], "slot 1 is the upper square")
	assert.InDelta(t, 1.0, d.Width(), 1e-9)
	assert.InDelta(t, 2.0, d.Height(), 1e-9)
}

func TestRenderCornerFacetOrder(t *testing.T) {
	tuple := cube.MustTuple(cube.Red, cube.Green, cube.White)
	d, err := Render(tuple, cube.Corner)
	require.NoError(t, err)

	require.Len(t, d.Facets, 3)
	for i, f := range d.Facets {
		assert.Equal(t, i, f.Slot)
		assert.Equal(t, tuple.At(i), f.Fill)
		assert.Len(t, f.Points, 4)
	}

	// The top facet reaches the highest point, the right facet lies at x >= 0
	// and the left facet at x <= 0.
	assert.Contains(t, d.Facets[0].Points, Point{0, 1})
	for _, p := range d.Facets[1].Points {
		assert.GreaterOrEqual(t, p.X, 0.0)
	}
	for _, p := range d.Facets[2].Points {
		assert.LessOrEqual(t, p.X, 0.0)
	}

	assert.Greater(t, d.Facets[0].Alpha, d.Facets[1].Alpha)
	assert.Greater(t, d.Facets[1].Alpha, d.Facets[2].Alpha)
}

func TestRenderRejectsArityMismatch(t *testing.T) {
	_, err := Render(cube.MustTuple(cube.Red, cube.White), cube.Corner)
	assert.Error(t, err)

	_, err = Render(cube.MustTuple(cube.Red, cube.Green, cube.White), cube.Edge)
	assert.Error(t, err)
}

func TestRasterizeCornerColors(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.Green, cube.White), cube.Corner)
	require.NoError(t, err)

	img, err := Rasterize(d, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Equal(t, 56, img.Bounds().Dx())

	assert.Equal(t, cube.Red.RGBA(), img.RGBAAt(27, 16), "top facet")
	assert.Equal(t, shade(cube.Green.RGBA(), rightAlpha), img.RGBAAt(41, 39), "right facet")
	assert.Equal(t, shade(cube.White.RGBA(), leftAlpha), img.RGBAAt(14, 39), "left facet")
	assert.Equal(t, Background, img.RGBAAt(0, 0), "corner of the canvas")
}

func TestRasterizeEdgeColors(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Yellow, cube.Blue), cube.Edge)
	require.NoError(t, err)

	img, err := Rasterize(d, 64)
	require.NoError(t, err)
	assert.Equal(t, cube.Yellow.RGBA(), img.RGBAAt(16, 47), "lower square")
	assert.Equal(t, cube.Blue.RGBA(), img.RGBAAt(16, 16), "upper square")
}

func TestRasterizeRejectsTinySize(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.White), cube.Edge)
	require.NoError(t, err)
	_, err = Rasterize(d, 2)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.White), cube.Edge)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, d, 32))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestWriteSVG(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.Green, cube.White), cube.Corner)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, d, 200))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Equal(t, 3, strings.Count(out, "<polygon"))
	assert.Contains(t, out, `data-slot="0"`)
	assert.Contains(t, out, `fill-opacity="0.50"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestWriteANSI(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.White), cube.Edge)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteANSI(&buf, d, 16))
	out := buf.String()

	assert.Contains(t, out, "\x1b[38;2;")
	assert.Equal(t, 8, strings.Count(out, "\n"), "16 pixel rows become 8 lines")
}

func TestDescribe(t *testing.T) {
	d, err := Render(cube.MustTuple(cube.Red, cube.Green, cube.White), cube.Corner)
	require.NoError(t, err)
	assert.Equal(t, "top: red, right: green, left: white", Describe(d))

	d, err = Render(cube.MustTuple(cube.Red, cube.White), cube.Edge)
	require.NoError(t, err)
	assert.Equal(t, "bottom: red, top: white", Describe(d))
}
