package collab

import "sort"

// Edge is an undirected weighted edge with Source < Target.
type Edge struct {
	Source string
	Target string
	Weight int
}

// Graph is an undirected, simple, weighted collaboration graph.
//
// Nodes are identified by key and carry a display label. Every accessor
// that returns several nodes or edges returns them sorted by key, so
// algorithms that walk the graph are deterministic.
type Graph struct {
	labels  map[string]string
	adj     map[string]map[string]int
	metrics map[string]NodeMetrics
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		labels:  make(map[string]string),
		adj:     make(map[string]map[string]int),
		metrics: make(map[string]NodeMetrics),
	}
}

// AddNode adds a node if it does not exist yet. An empty label is filled
// in by a later call with a non-empty one.
func (g *Graph) AddNode(key, label string) {
	if _, ok := g.adj[key]; !ok {
		g.adj[key] = make(map[string]int)
	}
	if g.labels[key] == "" {
		g.labels[key] = label
	}
}

// AddEdge increments the weight of the edge between u and v, creating both
// nodes and the edge with weight 1 as needed. Self-loops are ignored.
func (g *Graph) AddEdge(u, v string) {
	if u == v {
		return
	}
	g.AddNode(u, "")
	g.AddNode(v, "")
	g.adj[u][v]++
	g.adj[v][u]++
}

// HasNode reports whether key is a node of g.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.adj[key]
	return ok
}

// Label returns the display label of a node, falling back to its key.
func (g *Graph) Label(key string) string {
	if l := g.labels[key]; l != "" {
		return l
	}
	return key
}

// Weight returns the weight of the edge between u and v.
func (g *Graph) Weight(u, v string) (int, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// SetMetrics attaches computed metrics to a node.
func (g *Graph) SetMetrics(key string, m NodeMetrics) {
	if g.HasNode(key) {
		g.metrics[key] = m
	}
}

// Metrics returns the metrics attached to a node.
func (g *Graph) Metrics(key string) (NodeMetrics, bool) {
	m, ok := g.metrics[key]
	return m, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, nbrs := range g.adj {
		n += len(nbrs)
	}
	return n / 2
}

// Degree returns the number of neighbors of a node.
func (g *Graph) Degree(key string) int {
	return len(g.adj[key])
}

// Nodes returns all node keys in ascending order.
func (g *Graph) Nodes() []string {
	return sortedKeys(g.adj)
}

// Neighbors returns the neighbors of a node in ascending order.
func (g *Graph) Neighbors(key string) []string {
	return sortedKeys(g.adj[key])
}

// Edges returns all edges ordered by source, then target.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				edges = append(edges, Edge{Source: u, Target: v, Weight: g.adj[u][v]})
			}
		}
	}
	return edges
}

// Subgraph returns the subgraph induced by keys. Unknown keys are ignored.
func (g *Graph) Subgraph(keys []string) *Graph {
	sub := NewGraph()
	for _, k := range keys {
		if g.HasNode(k) {
			sub.AddNode(k, g.labels[k])
			if m, ok := g.metrics[k]; ok {
				sub.metrics[k] = m
			}
		}
	}
	for u := range sub.adj {
		for v, w := range g.adj[u] {
			if sub.HasNode(v) {
				sub.adj[u][v] = w
			}
		}
	}
	return sub
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
