package collab

import (
	"github.com/cockroachdb/errors"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
)

// ErrUnknownNode is returned when metrics are requested for a node that is
// not in the metrics table.
var ErrUnknownNode = errors.New("node not in metrics table")

// UnavailableMarker is written in place of an eigenvector value that could
// not be computed.
const UnavailableMarker = "unavailable"

// NodeMetrics holds the per-artist network measures.
type NodeMetrics struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Degree      float64  `json:"degree_centrality"`
	Betweenness float64  `json:"betweenness"`
	Eigenvector *float64 `json:"eigenvector"`

	// AvgPopularity is nil when every track of the artist lacks a
	// popularity score.
	AvgPopularity *float64 `json:"avg_popularity"`
}

// MetricsTable is the flat form of the metrics, one row per node sorted
// by key.
type MetricsTable struct {
	Rows        []NodeMetrics
	EigenMethod EigenMethod

	index map[string]int
}

// Analyze computes every node measure, attaches the metrics to the graph's
// nodes and returns them as a table. Average popularity is taken over all
// appearances, so solo tracks count too.
func Analyze(g *Graph, apps []Appearance, cfg Config) (*MetricsTable, EigenResult) {
	degree := DegreeCentrality(g)
	betweenness := BetweennessCentrality(g, cfg.Weighted)
	eigen := EigenvectorCentrality(g, cfg)
	avg := AveragePopularity(apps)

	nodes := g.Nodes()
	t := &MetricsTable{
		Rows:        make([]NodeMetrics, 0, len(nodes)),
		EigenMethod: eigen.Method,
		index:       make(map[string]int, len(nodes)),
	}
	for _, v := range nodes {
		m := NodeMetrics{
			Key:         v,
			Label:       g.Label(v),
			Degree:      degree[v],
			Betweenness: betweenness[v],
		}
		if s, ok := eigen.Scores[v]; ok {
			m.Eigenvector = &s
		}
		if p, ok := avg[v]; ok {
			m.AvgPopularity = &p
		}

		g.SetMetrics(v, m)
		t.index[v] = len(t.Rows)
		t.Rows = append(t.Rows, m)
	}
	return t, eigen
}

// Lookup returns the metrics of a node.
func (t *MetricsTable) Lookup(key string) (NodeMetrics, error) {
	i, ok := t.index[key]
	if !ok {
		return NodeMetrics{}, errors.Wrapf(ErrUnknownNode, "%q", key)
	}
	return t.Rows[i], nil
}

// WriteCSV persists the table. The artist_id column holds the node key and
// the artist column its label.
func (t *MetricsTable) WriteCSV(path string) error {
	table := &ioutils.Table{
		Header: []string{"artist_id", "artist", "degree_centrality", "betweenness", "eigenvector", "avg_popularity"},
	}
	for _, m := range t.Rows {
		table.Rows = append(table.Rows, []string{
			m.Key,
			m.Label,
			ioutils.FormatFloat(m.Degree),
			ioutils.FormatFloat(m.Betweenness),
			ioutils.FormatNullableFloat(m.Eigenvector, UnavailableMarker),
			ioutils.FormatNullableFloat(m.AvgPopularity, ""),
		})
	}
	return ioutils.WriteCSV(path, table)
}
