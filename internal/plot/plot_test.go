package plot

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.7, 1},
		{1.5, 2},
		{3, 5},
		{7, 10},
		{23, 50},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, niceStep(tt.raw), 1e-12, "niceStep(%g)", tt.raw)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Alice", truncate("Alice", 10))
	assert.Equal(t, "Long..", truncate("Long Artist Name", 6))
	assert.Equal(t, "A..", truncate("Abcdef", 1))
}

func TestCanvas_EncodePNG(t *testing.T) {
	c := NewCanvas(120, 80)
	c.Fill(White)
	c.FillRect(10, 10, 50, 50, Red)
	c.Text(60, 40, "hi", Black, AlignCenter)

	data, err := c.EncodePNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	r, g, b, _ := img.At(30, 30).RGBA()
	assert.Greater(t, r, g, "inside the red rectangle")
	assert.Greater(t, r, b)

	r, g, b, _ = img.At(100, 5).RGBA()
	for _, ch := range []uint32{r, g, b} {
		assert.Greater(t, ch, uint32(0xf000), "background stays white")
	}
}

func TestCharts_Save(t *testing.T) {
	dir := t.TempDir()
	charts := map[string]*Canvas{
		"bar.png":       BarChart("Bars", "Value", []Bar{{"a", 1}, {"b", 3}}, SkyBlue, Orange),
		"hist.png":      Histogram("Hist", "x", "Count", []float64{0, 1, 2}, []float64{3, 5}),
		"line.png":      LineChart("Line", "Year", "Avg", []float64{2019, 2020, 2021}, []float64{50, 55, 52}, Red),
		"scatter.png":   ScatterChart("Scatter", "x", "y", []float64{1, 2, 3}, []float64{3, 1, 2}, Blue),
		"empty-bar.png": BarChart("Empty", "Value", nil),
		"flat-line.png": LineChart("Flat", "Year", "Avg", []float64{2020}, []float64{60}, Red),
	}

	for name, c := range charts {
		path := filepath.Join(dir, "nested", name)
		require.NoError(t, c.SavePNG(path), name)
		assert.FileExists(t, path)
	}
}

func TestNetwork(t *testing.T) {
	nodes := []NetworkNode{
		{Key: "a", X: -1, Y: 0, Radius: 8, Label: "A"},
		{Key: "b", X: 1, Y: 0, Radius: 8},
		{Key: "c", X: 0, Y: 0, Radius: 12, Label: "C"},
	}
	edges := []NetworkEdge{{From: "a", To: "c"}, {From: "c", To: "b"}, {From: "c", To: "missing"}}

	img := Network("Net", 300, 200, nodes, edges).Image()
	assert.Equal(t, 300, img.Bounds().Dx())

	// The middle node sits at the center of the drawing area.
	r, _, _, _ := img.At(150, 120).RGBA()
	assert.Less(t, r, uint32(0xf000), "node pixel should be tinted")
}
