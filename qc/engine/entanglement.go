package engine

import (
	"math"

	"github.com/kegliz/synthesis/qc/qmath"
)

// Entanglement is the bipartite Schmidt-decomposition summary of the
// current state at the split k = floor(n/2).
type Entanglement struct {
	SchmidtRank    int
	EntropyBits    float64
	IsEntangled    bool
	BipartiteSplit int
	TopCoeffs      []float64
}

const schmidtTol = 1e-10

// Entanglement reshapes ψ into a 2^k x 2^(n-k) matrix at the split
// k=floor(n/2), computes its singular values via qmath.SVD, and reports
// the Schmidt rank, entanglement entropy and up to 8 leading Schmidt
// coefficients.
func (e *Engine) Entanglement() (Entanglement, error) {
	if err := e.requireInitialized(); err != nil {
		return Entanglement{}, err
	}
	k := e.n / 2
	rows := 1 << uint(k)
	cols := 1 << uint(e.n-k)

	m := qmath.NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, e.psi[r*cols+c])
		}
	}

	result := qmath.SVD(m)

	rank := 0
	var entropy float64
	for _, s := range result.Values {
		if s > schmidtTol {
			rank++
		}
		p := s * s
		if p > schmidtTol {
			entropy -= p * math.Log2(p)
		}
	}

	top := result.Values
	if len(top) > 8 {
		top = top[:8]
	}
	topCopy := make([]float64, len(top))
	copy(topCopy, top)

	return Entanglement{
		SchmidtRank:    rank,
		EntropyBits:    entropy,
		IsEntangled:    rank > 1,
		BipartiteSplit: k,
		TopCoeffs:      topCopy,
	}, nil
}
