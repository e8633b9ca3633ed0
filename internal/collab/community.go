package collab

import "sort"

// Community is a connected component of the collaboration graph.
type Community struct {
	// Index is the 1-based position in the order returned by Communities.
	Index int

	// Members holds the node keys in ascending order.
	Members []string
}

// Size returns the number of members.
func (c Community) Size() int {
	return len(c.Members)
}

// IsBig reports whether the community has at least threshold members.
func (c Community) IsBig(threshold int) bool {
	return len(c.Members) >= threshold
}

// Communities partitions the graph into its connected components.
//
// Components are ordered by size, largest first; equal sizes are ordered
// by their smallest member key. The order only depends on the graph, so
// indices are stable between runs on the same data.
func Communities(g *Graph) []Community {
	visited := make(map[string]bool, g.NodeCount())
	var comps [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		visited[start] = true
		members := []string{start}
		queue := []string{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.Neighbors(v) {
				if !visited[w] {
					visited[w] = true
					members = append(members, w)
					queue = append(queue, w)
				}
			}
		}
		sort.Strings(members)
		comps = append(comps, members)
	}

	// Components are discovered in order of their smallest key, so a stable
	// sort by size keeps that as the tie-breaker.
	sort.SliceStable(comps, func(i, j int) bool {
		return len(comps[i]) > len(comps[j])
	})

	out := make([]Community, len(comps))
	for i, members := range comps {
		out[i] = Community{Index: i + 1, Members: members}
	}
	return out
}
