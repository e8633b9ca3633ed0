package collab

import (
	"math"
	"math/rand/v2"
)

// Point is a 2D layout position.
type Point struct {
	X, Y float64
}

// SpringLayout positions the nodes with the Fruchterman-Reingold
// force-directed algorithm.
//
// Initial positions are drawn uniformly from the unit square with a
// generator seeded by cfg.Seed, so the same graph always gets the same
// layout. Edge weights scale the attractive force. The result is centered
// on the origin and scaled to fit [-1, 1] in both dimensions; a single
// node sits at the origin.
func SpringLayout(g *Graph, cfg LayoutConfig) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)
	pos := make(map[string]Point, n)
	switch n {
	case 0:
		return pos
	case 1:
		pos[nodes[0]] = Point{}
		return pos
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range nodes {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	adj := make([][]float64, n)
	index := make(map[string]int, n)
	for i, v := range nodes {
		index[v] = i
		adj[i] = make([]float64, n)
	}
	for _, e := range g.Edges() {
		i, j := index[e.Source], index[e.Target]
		adj[i][j] = float64(e.Weight)
		adj[j][i] = float64(e.Weight)
	}

	k := cfg.K
	if k <= 0 {
		k = math.Sqrt(1 / float64(n))
	}
	t := 0.1 * math.Max(span(xs), span(ys))
	dt := t / float64(cfg.Iterations+1)

	const threshold = 1e-4
	dx := make([]float64, n)
	dy := make([]float64, n)
	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := 0; i < n; i++ {
			var fx, fy float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				ddx, ddy := xs[i]-xs[j], ys[i]-ys[j]
				dist := math.Max(math.Hypot(ddx, ddy), 0.01)
				f := k*k/(dist*dist) - adj[i][j]*dist/k
				fx += ddx * f
				fy += ddy * f
			}
			length := math.Hypot(fx, fy)
			if length < 0.01 {
				length = 0.1
			}
			dx[i] = fx * t / length
			dy[i] = fy * t / length
		}

		moved := 0.0
		for i := 0; i < n; i++ {
			xs[i] += dx[i]
			ys[i] += dy[i]
			moved += dx[i]*dx[i] + dy[i]*dy[i]
		}
		t -= dt
		if math.Sqrt(moved)/float64(n) < threshold {
			break
		}
	}

	rescale(xs, ys)
	for i, v := range nodes {
		pos[v] = Point{X: xs[i], Y: ys[i]}
	}
	return pos
}

func span(vs []float64) float64 {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}

// rescale centers the coordinates on their mean and scales them so the
// largest absolute coordinate is 1.
func rescale(xs, ys []float64) {
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(len(xs))
	my /= float64(len(ys))

	lim := 0.0
	for i := range xs {
		xs[i] -= mx
		ys[i] -= my
		lim = math.Max(lim, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	if lim == 0 {
		return
	}
	for i := range xs {
		xs[i] /= lim
		ys[i] /= lim
	}
}
