package calculator

import (
	"math"

	"github.com/relmetrics/afdmetric/internal/pli"
)

// CalculateFI returns the fraction of information: mutual information
// I(X;Y) normalized by H(Y), in nats throughout. Being a ratio of two
// entropies computed with the same log base, the result is
// base-invariant — callers comparing against log2-based literature
// values get the same number regardless.
func (c *Calculator) CalculateFI(lhsIndices, rhsIndices []int) (float64, error) {
	x, y, numRows, err := c.plis(lhsIndices, rhsIndices)
	if err != nil {
		return 0, err
	}

	if y.NumClusters() < 2 {
		return 0, nil
	}

	entropy := y.Entropy()
	condEntropy := conditionalEntropy(x.Clusters(), y.Clusters(), numRows)

	return (entropy - condEntropy) / entropy, nil
}

// conditionalEntropy computes H(Y|X) = -(1/N) * sum_x sum_y
// |x n y| * (ln|x n y| - ln|x|) over X-clusters and Y-clusters.
// X-singletons are skipped entirely: for a singleton x,
// |x n y| is always 1 and ln|x| is 0, so every term is 1*ln(1) = 0.
// Within a stored X-cluster, rows that land on a Y-singleton are
// accounted for via a leftover count rather than an explicit
// per-Y-singleton term, by the same collapse p1p2.go uses for p2.
func conditionalEntropy(xClusters, yClusters []pli.Cluster, numRows int) float64 {
	sortedY := make([]pli.Cluster, len(yClusters))
	for i, y := range yClusters {
		sortedY[i] = pli.SortedCopy(y)
	}

	var sum float64
	for _, x := range xClusters {
		sortedX := pli.SortedCopy(x)
		size := x.Size()
		logX := math.Log(float64(size))

		matched := 0
		for _, y := range sortedY {
			inter := pli.IntersectSize(sortedX, y)
			if inter == 0 {
				continue
			}
			matched += inter
			sum -= float64(inter) * (math.Log(float64(inter)) - logX)
		}
		leftover := size - matched
		sum -= float64(leftover) * (0 - logX) // ln(1) == 0 for each Y-singleton row
	}

	return sum / float64(numRows)
}
