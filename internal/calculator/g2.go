package calculator

import "github.com/relmetrics/afdmetric/internal/pli"

// CalculateG2 returns the fraction of rows that must be removed to make
// lhs -> rhs an exact functional dependency. Range [0,1]; 0 iff lhs
// functionally determines rhs.
func (c *Calculator) CalculateG2(lhsIndices, rhsIndices []int) (float64, error) {
	x, y, numRows, err := c.plis(lhsIndices, rhsIndices)
	if err != nil {
		return 0, err
	}

	ptY := y.ProbingTable()

	var errorRows float64
	for _, cluster := range x.Clusters() {
		freq := pli.ClassFrequencies(cluster, ptY)
		size := cluster.Size()
		if len(freq) != 1 || !singleFrequencyMatches(freq, size) {
			errorRows += float64(size)
		}
	}
	// Singleton clusters of X trivially agree with themselves on Y and
	// contribute zero errors, so only stored clusters need visiting.

	return errorRows / float64(numRows), nil
}

func singleFrequencyMatches(freq map[int32]int, size int) bool {
	for _, count := range freq {
		return count == size
	}
	return false
}
