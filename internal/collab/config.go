package collab

import "github.com/cockroachdb/errors"

// NodeKey selects what identifies a graph node.
type NodeKey string

const (
	// NodeKeyID keys nodes by artist ID and carries the display name as the
	// node label. Two artists sharing a name stay distinct.
	NodeKeyID NodeKey = "id"

	// NodeKeyName keys nodes by display name, as read from the wide table.
	// Artists sharing a name collapse into one node.
	NodeKeyName NodeKey = "name"
)

// ParseNodeKey validates a node key mode.
func ParseNodeKey(s string) (NodeKey, error) {
	switch NodeKey(s) {
	case NodeKeyID, NodeKeyName:
		return NodeKey(s), nil
	}
	return "", errors.Newf("unknown node key %q (want %q or %q)", s, NodeKeyID, NodeKeyName)
}

// Config controls graph construction and the centrality measures.
type Config struct {
	NodeKey NodeKey

	// IncludeSolo adds artists that never collaborate as isolated nodes.
	IncludeSolo bool

	// Weighted makes betweenness use 1/weight as edge distance and
	// eigenvector centrality use the weighted adjacency matrix.
	Weighted bool

	EigenMaxIter   int
	EigenTolerance float64
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		NodeKey:        NodeKeyID,
		EigenMaxIter:   1000,
		EigenTolerance: 1e-6,
	}
}

// LayoutConfig parameterizes the spring layout.
type LayoutConfig struct {
	// K is the optimal distance between nodes.
	K float64

	Iterations int
	Seed       uint64
}

// RenderConfig controls the network renderings.
type RenderConfig struct {
	// CommunityThreshold is the minimum size of a "big" community.
	CommunityThreshold int

	// LabelThreshold is the minimum average popularity for a node to be
	// labeled in the full-graph rendering.
	LabelThreshold float64

	Layout LayoutConfig

	// Workers bounds how many communities are rendered at once.
	Workers int
}

// DefaultRenderConfig returns the rendering configuration used when none
// is given.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		CommunityThreshold: 10,
		LabelThreshold:     50,
		Layout:             LayoutConfig{K: 0.3, Iterations: 50, Seed: 42},
		Workers:            1,
	}
}
