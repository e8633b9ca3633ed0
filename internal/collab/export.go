package collab

import (
	"strconv"
	"time"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
)

// GraphDocument is the JSON export of the collaboration graph in the
// node-link shape force-directed web viewers consume.
type GraphDocument struct {
	Nodes []ExportNode `json:"nodes"`
	Links []ExportLink `json:"links"`
	Meta  ExportMeta   `json:"meta"`
}

// ExportNode is a node of the exported graph. Group is the 1-based index of
// the node's community.
type ExportNode struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Group   int          `json:"group"`
	Metrics *NodeMetrics `json:"metrics,omitempty"`
}

// ExportLink is an edge of the exported graph. Viewers read the weight
// from "value".
type ExportLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"value"`
}

// ExportMeta carries statistics and the settings that produced the graph.
type ExportMeta struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Stats       ExportStats       `json:"stats"`
	Config      map[string]string `json:"config"`
}

// ExportStats summarizes the graph.
type ExportStats struct {
	TotalNodes       int         `json:"total_nodes"`
	TotalEdges       int         `json:"total_edges"`
	TotalCommunities int         `json:"total_communities"`
	EigenMethod      EigenMethod `json:"eigenvector_method"`
}

// Export builds the JSON document of g. Nodes and links are sorted by key,
// so only GeneratedAt differs between runs on the same data.
func Export(g *Graph, comms []Community, method EigenMethod, cfg Config, now time.Time) *GraphDocument {
	group := make(map[string]int, g.NodeCount())
	for _, c := range comms {
		for _, m := range c.Members {
			group[m] = c.Index
		}
	}

	doc := &GraphDocument{
		Nodes: make([]ExportNode, 0, g.NodeCount()),
		Links: make([]ExportLink, 0, g.EdgeCount()),
		Meta: ExportMeta{
			GeneratedAt: now.UTC(),
			Stats: ExportStats{
				TotalNodes:       g.NodeCount(),
				TotalEdges:       g.EdgeCount(),
				TotalCommunities: len(comms),
				EigenMethod:      method,
			},
			Config: map[string]string{
				"node_key":     string(cfg.NodeKey),
				"weighted":     strconv.FormatBool(cfg.Weighted),
				"include_solo": strconv.FormatBool(cfg.IncludeSolo),
			},
		},
	}

	for _, v := range g.Nodes() {
		n := ExportNode{ID: v, Label: g.Label(v), Group: group[v]}
		if m, ok := g.Metrics(v); ok {
			n.Metrics = &m
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, e := range g.Edges() {
		doc.Links = append(doc.Links, ExportLink{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return doc
}

// WriteJSON writes the document to path.
func (d *GraphDocument) WriteJSON(path string) error {
	return ioutils.WriteJSON(path, d)
}
