// Package plot renders the pipeline's charts and network diagrams to PNG.
//
// It is a write-only sink: callers compute the data, plot only turns it
// into pixels. A Canvas is drawn with vector shapes rasterized at twice the
// target resolution, scaled down with Catmull-Rom interpolation and then
// labeled with a fixed 7x13 bitmap font.
//
// # Charts
//
//	c := plot.BarChart("Average Popularity: Collab vs Non-Collab", "Avg Popularity",
//	    []plot.Bar{{Label: "False", Value: 61.2}, {Label: "True", Value: 68.9}},
//	    plot.SkyBlue, plot.Orange)
//	err := c.SavePNG("results/collab_vs_noncollab.png")
//
// Histogram, LineChart and ScatterChart work the same way.
//
// # Networks
//
// Network takes positions in [-1, 1], radii in pixels and optional labels.
package plot
