package collab

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/plot"
)

// Rendering sizes in pixels.
const (
	networkWidth    = 1800
	networkHeight   = 1200
	communityWidth  = 1200
	communityHeight = 900
)

// NetworkTitle is the title of the full-graph rendering.
const NetworkTitle = "Collaboration Network (Node size = Avg Popularity)"

// CommunityTitle returns the title of a community rendering.
func CommunityTitle(c Community) string {
	return fmt.Sprintf("Community %d (size=%d)", c.Index, c.Size())
}

// NodeRadius returns the drawn radius of a node. The area grows linearly
// with average popularity; nodes without a popularity get the minimum.
func NodeRadius(avg *float64) float64 {
	const minRadius = 2.0
	if avg == nil || *avg <= 0 {
		return minRadius
	}
	return minRadius + 0.6*math.Sqrt(*avg*10)
}

// RenderedCommunity describes one written community image.
type RenderedCommunity struct {
	Community Community
	Big       bool
	Path      string
}

// RenderNetwork draws the whole graph to path. Only nodes whose average
// popularity reaches cfg.LabelThreshold are labeled.
func RenderNetwork(g *Graph, table *MetricsTable, cfg RenderConfig, path string) error {
	canvas, err := drawGraph(g, table, cfg, NetworkTitle, networkWidth, networkHeight, func(m NodeMetrics) bool {
		return m.AvgPopularity != nil && *m.AvgPopularity >= cfg.LabelThreshold
	})
	if err != nil {
		return err
	}
	return canvas.SavePNG(path)
}

// RenderCommunities draws every community with all its nodes labeled and
// writes it below the big or small community directory of paths.
//
// Up to cfg.Workers communities are rendered at once; every community
// writes its own file. The first failure cancels the remaining work.
func RenderCommunities(ctx context.Context, g *Graph, table *MetricsTable, comms []Community, cfg RenderConfig, paths *model.PathConfig) ([]RenderedCommunity, error) {
	out := make([]RenderedCommunity, len(comms))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(cfg.Workers, 1))
	for i, comm := range comms {
		big := comm.IsBig(cfg.CommunityThreshold)
		path := paths.CommunityFile(big, comm.Index)
		out[i] = RenderedCommunity{Community: comm, Big: big, Path: path}

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sub := g.Subgraph(comm.Members)
			canvas, err := drawGraph(sub, table, cfg, CommunityTitle(comm), communityWidth, communityHeight, func(NodeMetrics) bool {
				return true
			})
			if err != nil {
				return err
			}
			return canvas.SavePNG(path)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func drawGraph(g *Graph, table *MetricsTable, cfg RenderConfig, title string, width, height int, label func(NodeMetrics) bool) (*plot.Canvas, error) {
	pos := SpringLayout(g, cfg.Layout)

	nodes := make([]plot.NetworkNode, 0, g.NodeCount())
	for _, key := range g.Nodes() {
		m, err := table.Lookup(key)
		if err != nil {
			return nil, err
		}
		n := plot.NetworkNode{
			Key:    key,
			X:      pos[key].X,
			Y:      pos[key].Y,
			Radius: NodeRadius(m.AvgPopularity),
		}
		if label(m) {
			n.Label = m.Label
		}
		nodes = append(nodes, n)
	}

	var edges []plot.NetworkEdge
	for _, e := range g.Edges() {
		edges = append(edges, plot.NetworkEdge{From: e.Source, To: e.Target})
	}

	return plot.Network(title, width, height, nodes, edges), nil
}
