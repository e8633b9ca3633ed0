package plot

import "image/color"

// NetworkNode is a node to draw. X and Y are layout coordinates in
// [-1, 1]; an empty Label draws no text.
type NetworkNode struct {
	Key    string
	X, Y   float64
	Radius float64
	Label  string
}

// NetworkEdge connects two nodes by key.
type NetworkEdge struct {
	From, To string
}

var (
	networkNodeFill = color.NRGBA{135, 206, 235, 190}
	networkEdge     = color.NRGBA{0, 0, 0, 60}
)

// Network draws a node-link diagram: faded edges first, then nodes, then
// labels centered on their node. Edges referring to unknown nodes are
// skipped.
func Network(title string, width, height int, nodes []NetworkNode, edges []NetworkEdge) *Canvas {
	c := NewCanvas(width, height)
	c.Fill(White)
	c.Text(float64(width)/2, 24, title, Black, AlignCenter)

	const pad = 40.0
	top := pad + 20
	x0, x1 := pad, float64(width)-pad
	y0, y1 := top, float64(height)-pad

	px := func(x float64) float64 { return x0 + (x+1)/2*(x1-x0) }
	py := func(y float64) float64 { return y1 - (y+1)/2*(y1-y0) }

	byKey := make(map[string]NetworkNode, len(nodes))
	for _, n := range nodes {
		byKey[n.Key] = n
	}

	for _, e := range edges {
		a, okA := byKey[e.From]
		b, okB := byKey[e.To]
		if !okA || !okB {
			continue
		}
		c.Line(px(a.X), py(a.Y), px(b.X), py(b.Y), 1, networkEdge)
	}
	for _, n := range nodes {
		c.Circle(px(n.X), py(n.Y), n.Radius, networkNodeFill, Gray)
	}
	for _, n := range nodes {
		if n.Label != "" {
			c.Text(px(n.X), py(n.Y)+4, n.Label, Black, AlignCenter)
		}
	}
	return c
}
