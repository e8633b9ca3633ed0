package collab

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoConvergence is returned when power iteration does not converge
	// within the iteration limit.
	ErrNoConvergence = errors.New("eigenvector centrality did not converge")

	// ErrEigenUnavailable is returned when the direct eigendecomposition
	// cannot produce a well-defined centrality vector.
	ErrEigenUnavailable = errors.New("eigenvector centrality unavailable")
)

// EigenMethod names the method that produced eigenvector centralities.
type EigenMethod string

const (
	EigenPower       EigenMethod = "power_iteration"
	EigenDirect      EigenMethod = "direct"
	EigenUnavailable EigenMethod = "unavailable"
)

// EigenResult is the outcome of EigenvectorCentrality. Scores is nil when
// Method is EigenUnavailable. PowerErr and DirectErr record why the
// corresponding method was not used.
type EigenResult struct {
	Scores    map[string]float64
	Method    EigenMethod
	PowerErr  error
	DirectErr error
}

// EigenvectorCentrality computes eigenvector centrality by power iteration
// and falls back to a direct eigendecomposition when the iteration does not
// converge. If both fail the result is marked unavailable. It never returns
// an error.
func EigenvectorCentrality(g *Graph, cfg Config) EigenResult {
	scores, err := PowerIteration(g, cfg.Weighted, cfg.EigenMaxIter, cfg.EigenTolerance)
	if err == nil {
		return EigenResult{Scores: scores, Method: EigenPower}
	}
	res := EigenResult{PowerErr: err}

	scores, err = EigenDirectSolve(g, cfg.Weighted)
	if err == nil {
		res.Scores = scores
		res.Method = EigenDirect
		return res
	}
	res.DirectErr = err
	res.Method = EigenUnavailable
	return res
}

// PowerIteration iterates x ← (A+I)x from a uniform start, normalizing to
// unit length after each step, until the summed absolute change drops
// below N·tol. An empty graph yields an empty map.
func PowerIteration(g *Graph, weighted bool, maxIter int, tol float64) (map[string]float64, error) {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}, nil
	}

	x := make(map[string]float64, n)
	for _, v := range nodes {
		x[v] = 1 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		last := x
		x = make(map[string]float64, n)
		for _, v := range nodes {
			x[v] = last[v]
		}
		for _, v := range nodes {
			for _, nbr := range g.Neighbors(v) {
				x[nbr] += last[v] * edgeValue(g, v, nbr, weighted)
			}
		}

		norm := 0.0
		for _, v := range nodes {
			norm += x[v] * x[v]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		for _, v := range nodes {
			x[v] /= norm
		}

		diff := 0.0
		for _, v := range nodes {
			diff += math.Abs(x[v] - last[v])
		}
		if diff < float64(n)*tol {
			return x, nil
		}
	}
	return nil, errors.Wrapf(ErrNoConvergence, "after %d iterations", maxIter)
}

// EigenDirectSolve returns the eigenvector of the adjacency matrix
// belonging to its largest eigenvalue, with its sign chosen so the entries
// sum to a positive value and scaled to unit length.
//
// It fails on an empty graph, when the largest eigenvalue is not positive
// or is repeated (the leading eigenvector is then not unique) and when the
// vector has entries of both signs.
func EigenDirectSolve(g *Graph, weighted bool) (map[string]float64, error) {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return nil, errors.Wrap(ErrEigenUnavailable, "empty graph")
	}

	index := make(map[string]int, n)
	for i, v := range nodes {
		index[v] = i
	}
	a := mat.NewSymDense(n, nil)
	for _, e := range g.Edges() {
		w := edgeValue(g, e.Source, e.Target, weighted)
		a.SetSym(index[e.Source], index[e.Target], w)
	}

	var es mat.EigenSym
	if !es.Factorize(a, true) {
		return nil, errors.Wrap(ErrEigenUnavailable, "eigendecomposition failed")
	}
	values := es.Values(nil)
	lead := values[n-1]
	if lead <= 0 {
		return nil, errors.Wrapf(ErrEigenUnavailable, "largest eigenvalue %g is not positive", lead)
	}
	if n > 1 && math.Abs(lead-values[n-2]) < 1e-9*math.Max(1, math.Abs(lead)) {
		return nil, errors.Wrapf(ErrEigenUnavailable, "largest eigenvalue %g is repeated", lead)
	}

	var vectors mat.Dense
	es.VectorsTo(&vectors)
	vec := mat.Col(nil, n-1, &vectors)

	sum, norm := 0.0, 0.0
	for _, v := range vec {
		sum += v
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if sum < 0 {
		norm = -norm
	}

	const negligible = 1e-9
	scores := make(map[string]float64, n)
	for i, v := range nodes {
		s := vec[i] / norm
		if s < 0 {
			if s < -negligible {
				return nil, errors.Wrap(ErrEigenUnavailable, "leading eigenvector has mixed signs")
			}
			s = 0
		}
		scores[v] = s
	}
	return scores, nil
}

func edgeValue(g *Graph, u, v string, weighted bool) float64 {
	if !weighted {
		return 1
	}
	w, _ := g.Weight(u, v)
	return float64(w)
}
