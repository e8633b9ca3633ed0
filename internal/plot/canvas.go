package plot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
)

// supersample is the factor shapes are rasterized at before the canvas is
// scaled down to its final size.
const supersample = 2

// circleSegments is the number of polygon sides used to draw a circle.
const circleSegments = 48

// Align is the horizontal alignment of a text relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type textOp struct {
	x, y  float64
	s     string
	c     color.Color
	align Align
}

// Canvas is a raster drawing surface in pixel coordinates with the origin
// at the top left.
//
// Shapes are rasterized at a higher resolution and scaled down with
// Catmull-Rom when the image is encoded; text is drawn afterwards at the
// final resolution so glyphs stay crisp.
//
// Example usage:
//
//	c := NewCanvas(800, 500)
//	c.Fill(color.White)
//	c.Line(10, 10, 790, 490, 1, color.Black)
//	c.Circle(400, 250, 20, SkyBlue, Gray)
//	c.Text(400, 30, "Title", color.Black, AlignCenter)
//	err := c.SavePNG("results/example.png")
type Canvas struct {
	width, height int
	img           *image.RGBA
	raster        *vector.Rasterizer
	texts         []textOp
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample)),
	}
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect paints the axis-aligned rectangle spanned by two corners.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, col color.Color) {
	c.polygon(col, [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})
}

// StrokeRect outlines a rectangle with lines of the given width.
func (c *Canvas) StrokeRect(x0, y0, x1, y1, width float64, col color.Color) {
	c.Line(x0, y0, x1, y0, width, col)
	c.Line(x1, y0, x1, y1, width, col)
	c.Line(x1, y1, x0, y1, width, col)
	c.Line(x0, y1, x0, y0, width, col)
}

// Line draws a straight segment.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Offset perpendicular to the segment by half the width.
	nx, ny := -dy/length*width/2, dx/length*width/2
	c.polygon(col, [][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	})
}

// Circle draws a filled circle with an optional outline. A nil color
// skips that part.
func (c *Canvas) Circle(cx, cy, r float64, fill, stroke color.Color) {
	if stroke != nil {
		c.polygon(stroke, circlePoints(cx, cy, r+0.75))
	}
	if fill != nil {
		c.polygon(fill, circlePoints(cx, cy, r))
	}
}

func circlePoints(cx, cy, r float64) [][2]float64 {
	pts := make([][2]float64, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

// Text queues a single line of text. (x, y) is the baseline anchor.
func (c *Canvas) Text(x, y float64, s string, col color.Color, align Align) {
	c.texts = append(c.texts, textOp{x: x, y: y, s: s, c: col, align: align})
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, s).Round())
}

// polygon fills a closed path given in canvas coordinates. Only the
// bounding box of the path is rasterized.
func (c *Canvas) polygon(col color.Color, pts [][2]float64) {
	if len(pts) < 3 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(
		int(math.Floor(minX*supersample)), int(math.Floor(minY*supersample)),
		int(math.Ceil(maxX*supersample)), int(math.Ceil(maxY*supersample)),
	).Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	if c.raster == nil {
		c.raster = vector.NewRasterizer(box.Dx(), box.Dy())
	} else {
		c.raster.Reset(box.Dx(), box.Dy())
	}
	r := c.raster
	r.DrawOp = draw.Over

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.MoveTo(float32(pts[0][0]*supersample-ox), float32(pts[0][1]*supersample-oy))
	for _, p := range pts[1:] {
		r.LineTo(float32(p[0]*supersample-ox), float32(p[1]*supersample-oy))
	}
	r.ClosePath()
	r.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// Image renders the canvas at its final size.
func (c *Canvas) Image() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)

	d := &font.Drawer{Dst: dst, Face: basicfont.Face7x13}
	for _, t := range c.texts {
		x := t.x
		switch t.align {
		case AlignCenter:
			x -= TextWidth(t.s) / 2
		case AlignRight:
			x -= TextWidth(t.s)
		}
		d.Src = image.NewUniform(t.c)
		d.Dot = fixed.P(int(math.Round(x)), int(math.Round(t.y)))
		d.DrawString(t.s)
	}
	return dst
}

// EncodePNG returns the rendered canvas as PNG bytes.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes the rendered canvas to path, creating parent directories.
func (c *Canvas) SavePNG(path string) error {
	data, err := c.EncodePNG()
	if err != nil {
		return err
	}
	return ioutils.WriteFile(path, data)
}
