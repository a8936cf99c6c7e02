package algorithms

import (
	"math"

	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// PowerIterationOptions configures the dominant-eigenvector power iteration.
type PowerIterationOptions struct {
	MaxIterations int            // iteration cap; <= 0 iterates until Tolerance is met (cap 100 if Tolerance is also <= 0)
	Tolerance     float64        // convergence threshold on ‖v_k − v_(k-1)‖; <= 0 disables the test and runs MaxIterations iterations
	Initial       *sparse.Vector // optional starting guess; a uniform unit vector over g's nodes is used if nil
	// ComputeEigenvalue requests the Rayleigh-quotient eigenvalue, at the
	// cost of one extra matrix-vector product after convergence. When
	// false, Eigenvalue is left at 0.
	ComputeEigenvalue bool
}

// DefaultPowerIterationOptions returns sensible defaults.
func DefaultPowerIterationOptions() PowerIterationOptions {
	return PowerIterationOptions{
		MaxIterations:     100,
		Tolerance:         1e-6,
		ComputeEigenvalue: true,
	}
}

// PowerIterationResult holds the estimated dominant eigenvector and its
// Rayleigh-quotient eigenvalue.
type PowerIterationResult struct {
	Eigenvector *sparse.Vector
	Eigenvalue  float64
	Iterations  int
	Converged   bool
}

// PowerIteration estimates the dominant eigenvector/eigenvalue pair of g by
// repeated matrix-vector multiplication and renormalisation. It never
// returns an error: a graph with no nodes yields an empty eigenvector with
// Converged true, and failure to converge within MaxIterations yields the
// best estimate found with Converged false.
func PowerIteration(g *sparse.Graph, opts PowerIterationOptions) PowerIterationResult {
	if opts.MaxIterations <= 0 && opts.Tolerance <= 0 {
		opts.MaxIterations = 100
	}

	nodes := g.Nodes()
	if len(nodes) == 0 {
		return PowerIterationResult{Eigenvector: sparse.NewVector(0, 0), Converged: true}
	}

	v := opts.Initial
	if v == nil {
		v = sparse.NewVector(0, 0)
		init := float32(1.0 / math.Sqrt(float64(len(nodes))))
		for _, n := range nodes {
			v.Set(n, init)
		}
	} else {
		v = v.Clone()
	}
	normalize(v)

	converged := false
	iterations := 0
	for opts.MaxIterations <= 0 || iterations < opts.MaxIterations {
		iterations++

		next := g.MulVector(v)
		if next.Empty() {
			return PowerIterationResult{Eigenvector: v, Eigenvalue: 0, Iterations: iterations, Converged: true}
		}
		normalize(next)

		diff := next.SubNorm(v)
		v = next
		if opts.Tolerance > 0 && diff < opts.Tolerance {
			converged = true
			break
		}
	}

	var eigenvalue float64
	if opts.ComputeEigenvalue {
		eigenvalue = rayleighQuotient(g, v)
	}
	return PowerIterationResult{
		Eigenvector: v,
		Eigenvalue:  eigenvalue,
		Iterations:  iterations,
		Converged:   converged,
	}
}

func normalize(v *sparse.Vector) {
	n := v.Norm()
	if n == 0 {
		return
	}
	v.MulConst(float32(1 / n))
}

// rayleighQuotient computes vᵀ·g·v / vᵀ·v for a unit vector v, which is
// simply vᵀ·g·v when ‖v‖ = 1.
func rayleighQuotient(g *sparse.Graph, v *sparse.Vector) float64 {
	gv := g.MulVector(v)
	return v.Dot(gv)
}
