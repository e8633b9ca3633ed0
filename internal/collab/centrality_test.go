package collab

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(edges ...[2]string) *Graph {
	g := NewGraph()
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func TestDegreeCentrality(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
		want map[string]float64
	}{
		{
			name: "empty",
			g:    NewGraph(),
			want: map[string]float64{},
		},
		{
			name: "single node",
			g: func() *Graph {
				g := NewGraph()
				g.AddNode("A", "A")
				return g
			}(),
			want: map[string]float64{"A": 1},
		},
		{
			name: "star",
			g:    graphOf([2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"hub", "c"}),
			want: map[string]float64{"hub": 1, "a": 1.0 / 3, "b": 1.0 / 3, "c": 1.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DegreeCentrality(tt.g)
			require.Len(t, got, len(tt.want))
			for k, v := range tt.want {
				assert.InDelta(t, v, got[k], 1e-12, k)
				assert.GreaterOrEqual(t, got[k], 0.0)
				assert.LessOrEqual(t, got[k], 1.0)
			}
		})
	}
}

func TestBetweennessCentrality(t *testing.T) {
	path := graphOf([2]string{"a", "b"}, [2]string{"b", "c"})
	bc := BetweennessCentrality(path, false)
	assert.InDelta(t, 0, bc["a"], 1e-12)
	assert.InDelta(t, 1, bc["b"], 1e-12)
	assert.InDelta(t, 0, bc["c"], 1e-12)

	star := graphOf([2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"hub", "c"})
	assert.InDelta(t, 1, BetweennessCentrality(star, false)["hub"], 1e-12)

	pair := graphOf([2]string{"a", "b"})
	assert.Equal(t, map[string]float64{"a": 0, "b": 0}, BetweennessCentrality(pair, false))
}

func TestBetweennessCentrality_Weighted(t *testing.T) {
	// Square a-b-c-d-a where the a-d-c side is heavier and therefore
	// shorter when weights are honored.
	g := graphOf(
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"a", "d"}, [2]string{"a", "d"},
		[2]string{"d", "c"}, [2]string{"d", "c"},
	)

	unweighted := BetweennessCentrality(g, false)
	for _, v := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, 1.0/6, unweighted[v], 1e-12, v)
	}

	weighted := BetweennessCentrality(g, true)
	assert.InDelta(t, 1.0/3, weighted["d"], 1e-12)
	assert.InDelta(t, 0, weighted["b"], 1e-12)
	assert.InDelta(t, 1.0/6, weighted["a"], 1e-12)
	assert.InDelta(t, 1.0/6, weighted["c"], 1e-12)
}

func TestEigenvectorCentrality_PowerIteration(t *testing.T) {
	triangle := graphOf([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})
	res := EigenvectorCentrality(triangle, DefaultConfig())
	require.Equal(t, EigenPower, res.Method)
	for _, v := range []string{"a", "b", "c"} {
		assert.InDelta(t, 1/math.Sqrt(3), res.Scores[v], 1e-6)
	}

	star := graphOf([2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"hub", "c"})
	res = EigenvectorCentrality(star, DefaultConfig())
	require.Equal(t, EigenPower, res.Method)
	assert.Greater(t, res.Scores["hub"], res.Scores["a"])
	for _, s := range res.Scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestEigenvectorCentrality_FallsBackToDirect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EigenMaxIter = 1

	triangle := graphOf([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})
	res := EigenvectorCentrality(triangle, cfg)
	assert.ErrorIs(t, res.PowerErr, ErrNoConvergence)
	require.Equal(t, EigenDirect, res.Method)
	for _, v := range []string{"a", "b", "c"} {
		assert.InDelta(t, 1/math.Sqrt(3), res.Scores[v], 1e-9)
	}
}

func TestEigenvectorCentrality_Unavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EigenMaxIter = 1

	// Two identical components share the leading eigenvalue.
	g := graphOf([2]string{"a", "b"}, [2]string{"c", "d"})
	res := EigenvectorCentrality(g, cfg)
	assert.Equal(t, EigenUnavailable, res.Method)
	assert.Nil(t, res.Scores)
	assert.ErrorIs(t, res.DirectErr, ErrEigenUnavailable)

	table, _ := Analyze(g, nil, cfg)
	for _, row := range table.Rows {
		assert.Nil(t, row.Eigenvector, row.Key)
	}
}

func TestEigenDirectSolve_Edgeless(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", "a")
	_, err := EigenDirectSolve(g, false)
	assert.ErrorIs(t, err, ErrEigenUnavailable)

	_, err = EigenDirectSolve(NewGraph(), false)
	assert.ErrorIs(t, err, ErrEigenUnavailable)
}

func TestPowerIteration_Empty(t *testing.T) {
	scores, err := PowerIteration(NewGraph(), false, 100, 1e-6)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
