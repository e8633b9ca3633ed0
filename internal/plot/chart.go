package plot

import (
	"image/color"
	"math"
	"strconv"
)

// Palette used by the charts.
var (
	White   = color.RGBA{255, 255, 255, 255}
	Black   = color.RGBA{0, 0, 0, 255}
	Gray    = color.RGBA{128, 128, 128, 255}
	Grid    = color.RGBA{225, 225, 225, 255}
	SkyBlue = color.RGBA{135, 206, 235, 255}
	Orange  = color.RGBA{255, 165, 0, 255}
	Green   = color.RGBA{0, 128, 0, 255}
	Purple  = color.RGBA{128, 0, 128, 255}
	Teal    = color.RGBA{0, 128, 128, 255}
	Red     = color.RGBA{220, 40, 40, 255}
	Blue    = color.RGBA{31, 119, 180, 255}
)

// Default chart size in pixels.
const (
	ChartWidth  = 800
	ChartHeight = 500
)

const (
	marginLeft   = 70
	marginRight  = 30
	marginTop    = 50
	marginBottom = 70
)

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// axes maps data coordinates onto the plot area of a canvas.
type axes struct {
	c                      *Canvas
	x0, y0, x1, y1         float64 // plot area in pixels
	xmin, xmax, ymin, ymax float64
}

func newAxes(c *Canvas, title, xlabel, ylabel string, xmin, xmax, ymin, ymax float64) *axes {
	w, h := c.Size()
	a := &axes{
		c:  c,
		x0: marginLeft, y0: marginTop,
		x1: float64(w - marginRight), y1: float64(h - marginBottom),
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
	}
	if a.xmax == a.xmin {
		a.xmin, a.xmax = a.xmin-0.5, a.xmax+0.5
	}
	if a.ymax == a.ymin {
		a.ymin, a.ymax = a.ymin-0.5, a.ymax+0.5
	}

	c.Fill(White)
	c.Text(float64(w)/2, 28, title, Black, AlignCenter)
	if xlabel != "" {
		c.Text((a.x0+a.x1)/2, float64(h)-15, xlabel, Black, AlignCenter)
	}
	if ylabel != "" {
		c.Text(8, a.y0-12, ylabel, Black, AlignLeft)
	}
	return a
}

func (a *axes) px(x float64) float64 {
	return a.x0 + (x-a.xmin)/(a.xmax-a.xmin)*(a.x1-a.x0)
}

func (a *axes) py(y float64) float64 {
	return a.y1 - (y-a.ymin)/(a.ymax-a.ymin)*(a.y1-a.y0)
}

// yGrid draws horizontal grid lines with tick labels.
func (a *axes) yGrid() {
	for _, t := range niceTicks(a.ymin, a.ymax, 6) {
		y := a.py(t)
		a.c.Line(a.x0, y, a.x1, y, 1, Grid)
		a.c.Text(a.x0-6, y+4, formatTick(t), Black, AlignRight)
	}
}

// xTicks draws tick labels along the x axis.
func (a *axes) xTicks() {
	for _, t := range niceTicks(a.xmin, a.xmax, 8) {
		x := a.px(t)
		a.c.Line(x, a.y1, x, a.y1+4, 1, Black)
		a.c.Text(x, a.y1+18, formatTick(t), Black, AlignCenter)
	}
}

func (a *axes) frame() {
	a.c.Line(a.x0, a.y1, a.x1, a.y1, 1, Black)
	a.c.Line(a.x0, a.y0, a.x0, a.y1, 1, Black)
}

// BarChart draws one bar per entry. Colors are cycled over the bars.
func BarChart(title, ylabel string, bars []Bar, colors ...color.Color) *Canvas {
	if len(colors) == 0 {
		colors = []color.Color{Blue}
	}
	c := NewCanvas(ChartWidth, ChartHeight)

	ymax := 0.0
	for _, b := range bars {
		ymax = math.Max(ymax, b.Value)
	}
	a := newAxes(c, title, "", ylabel, 0, 1, 0, niceCeil(ymax))
	a.yGrid()

	if len(bars) > 0 {
		slot := (a.x1 - a.x0) / float64(len(bars))
		maxChars := int(slot*0.95) / 7
		for i, b := range bars {
			left := a.x0 + float64(i)*slot + slot*0.15
			right := a.x0 + float64(i+1)*slot - slot*0.15
			c.FillRect(left, a.py(b.Value), right, a.y1, colors[i%len(colors)])

			label := truncate(b.Label, maxChars)
			y := a.y1 + 18
			if i%2 == 1 && TextWidth(b.Label) > slot {
				y += 14
			}
			c.Text((left+right)/2, y, label, Black, AlignCenter)
		}
	}
	a.frame()
	return c
}

// Histogram draws bars between consecutive bin edges; len(edges) must be
// len(counts)+1.
func Histogram(title, xlabel, ylabel string, edges, counts []float64) *Canvas {
	c := NewCanvas(ChartWidth, ChartHeight)
	if len(edges) < 2 || len(counts) != len(edges)-1 {
		newAxes(c, title, xlabel, ylabel, 0, 1, 0, 1).frame()
		return c
	}

	ymax := 0.0
	for _, n := range counts {
		ymax = math.Max(ymax, n)
	}
	a := newAxes(c, title, xlabel, ylabel, edges[0], edges[len(edges)-1], 0, niceCeil(ymax))
	a.yGrid()
	for i, n := range counts {
		x0, x1 := a.px(edges[i]), a.px(edges[i+1])
		if n > 0 {
			c.FillRect(x0, a.py(n), x1, a.y1, Blue)
			c.StrokeRect(x0, a.py(n), x1, a.y1, 1, Black)
		}
	}
	a.xTicks()
	a.frame()
	return c
}

// LineChart draws a polyline with a marker at every point. xs must be
// sorted.
func LineChart(title, xlabel, ylabel string, xs, ys []float64, col color.Color) *Canvas {
	c := NewCanvas(ChartWidth, ChartHeight)
	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)
	pad := (ymax - ymin) * 0.05
	a := newAxes(c, title, xlabel, ylabel, xmin, xmax, ymin-pad, ymax+pad)
	a.yGrid()
	for i := 1; i < len(xs); i++ {
		c.Line(a.px(xs[i-1]), a.py(ys[i-1]), a.px(xs[i]), a.py(ys[i]), 2, col)
	}
	for i := range xs {
		c.Circle(a.px(xs[i]), a.py(ys[i]), 4, col, nil)
	}
	a.xTicks()
	a.frame()
	return c
}

// ScatterChart draws one translucent marker per point.
func ScatterChart(title, xlabel, ylabel string, xs, ys []float64, col color.Color) *Canvas {
	c := NewCanvas(ChartWidth, ChartHeight)
	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)
	xpad, ypad := (xmax-xmin)*0.05, (ymax-ymin)*0.05
	a := newAxes(c, title, xlabel, ylabel, xmin-xpad, xmax+xpad, ymin-ypad, ymax+ypad)
	a.yGrid()

	r, g, b, _ := col.RGBA()
	marker := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 128}
	for i := range xs {
		c.Circle(a.px(xs[i]), a.py(ys[i]), 4, marker, nil)
	}
	a.xTicks()
	a.frame()
	return c
}

func bounds(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 1
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// niceTicks returns round tick positions covering [lo, hi].
func niceTicks(lo, hi float64, target int) []float64 {
	step := niceStep((hi - lo) / float64(target))
	if step == 0 {
		return nil
	}
	var ticks []float64
	for t := math.Ceil(lo/step) * step; t <= hi+step*1e-9; t += step {
		ticks = append(ticks, t)
	}
	return ticks
}

// niceStep rounds a raw step up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// niceCeil rounds v up to the next tick above it so bars never touch the
// top of the plot area.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	step := niceStep(v / 5)
	return math.Ceil(v*1.05/step) * step
}

func formatTick(v float64) string {
	if math.Abs(v-math.Round(v)) < 1e-9 {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max < 3 {
		max = 3
	}
	if len(r) <= max {
		return s
	}
	return string(r[:max-2]) + ".."
}
