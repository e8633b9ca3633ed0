package collab

import "container/heap"

// DegreeCentrality returns each node's degree divided by N-1. A graph with
// a single node gives it centrality 1.
func DegreeCentrality(g *Graph) map[string]float64 {
	n := g.NodeCount()
	dc := make(map[string]float64, n)
	if n <= 1 {
		for _, v := range g.Nodes() {
			dc[v] = 1
		}
		return dc
	}

	scale := 1 / float64(n-1)
	for _, v := range g.Nodes() {
		dc[v] = float64(g.Degree(v)) * scale
	}
	return dc
}

// BetweennessCentrality returns the normalized shortest-path betweenness of
// every node, computed with Brandes' algorithm.
//
// Paths are counted by hops unless weighted is set, in which case an edge
// of weight w has length 1/w so that frequent collaborators are closer.
// Values are normalized by 1/((N-1)(N-2)); graphs with fewer than three
// nodes have all zeros.
func BetweennessCentrality(g *Graph, weighted bool) map[string]float64 {
	nodes := g.Nodes()
	bc := make(map[string]float64, len(nodes))
	for _, v := range nodes {
		bc[v] = 0
	}

	for _, s := range nodes {
		var sp shortestPaths
		if weighted {
			sp = dijkstraPaths(g, s)
		} else {
			sp = bfsPaths(g, s)
		}

		// Accumulate dependencies in order of decreasing distance.
		delta := make(map[string]float64, len(sp.order))
		for i := len(sp.order) - 1; i >= 0; i-- {
			w := sp.order[i]
			coeff := (1 + delta[w]) / sp.sigma[w]
			for _, v := range sp.preds[w] {
				delta[v] += sp.sigma[v] * coeff
			}
			if w != s {
				bc[w] += delta[w]
			}
		}
	}

	n := len(nodes)
	if n <= 2 {
		return bc
	}
	scale := 1 / (float64(n-1) * float64(n-2))
	for v := range bc {
		bc[v] *= scale
	}
	return bc
}

// shortestPaths is the single-source result Brandes' accumulation needs:
// the nodes in non-decreasing distance order, the number of shortest paths
// to each node and each node's predecessors on those paths.
type shortestPaths struct {
	order []string
	sigma map[string]float64
	preds map[string][]string
}

func bfsPaths(g *Graph, s string) shortestPaths {
	sp := shortestPaths{
		sigma: map[string]float64{s: 1},
		preds: make(map[string][]string),
	}
	dist := map[string]int{s: 0}
	queue := []string{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		sp.order = append(sp.order, v)
		for _, w := range g.Neighbors(v) {
			if _, ok := dist[w]; !ok {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sp.sigma[w] += sp.sigma[v]
				sp.preds[w] = append(sp.preds[w], v)
			}
		}
	}
	return sp
}

func dijkstraPaths(g *Graph, s string) shortestPaths {
	sp := shortestPaths{
		sigma: map[string]float64{s: 1},
		preds: make(map[string][]string),
	}
	dist := map[string]float64{s: 0}
	done := make(map[string]bool)

	pq := &distQueue{}
	heap.Push(pq, distItem{node: s})
	seq := 1
	for pq.Len() > 0 {
		item := heap.Pop(pq).(distItem)
		v := item.node
		if done[v] {
			continue
		}
		done[v] = true
		sp.order = append(sp.order, v)

		for _, w := range g.Neighbors(v) {
			if done[w] {
				continue
			}
			weight, _ := g.Weight(v, w)
			d := dist[v] + 1/float64(weight)
			prev, seen := dist[w]
			switch {
			case !seen || d < prev:
				dist[w] = d
				sp.sigma[w] = sp.sigma[v]
				sp.preds[w] = []string{v}
				heap.Push(pq, distItem{node: w, dist: d, seq: seq})
				seq++
			case d == prev:
				sp.sigma[w] += sp.sigma[v]
				sp.preds[w] = append(sp.preds[w], v)
			}
		}
	}
	return sp
}

type distItem struct {
	node string
	dist float64
	seq  int
}

// distQueue is a min-heap on distance, ties broken by insertion order.
type distQueue []distItem

func (q distQueue) Len() int { return len(q) }
func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)   { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
