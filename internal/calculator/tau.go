package calculator

// CalculateTau returns the Goodman-Kruskal tau association coefficient
// for lhs -> rhs: the proportional reduction in Y-error given X, in
// [0,1]. Returns 0 without computing p1/p2 when rhs has fewer than 2
// classes (the dependency's Y side is constant).
func (c *Calculator) CalculateTau(lhsIndices, rhsIndices []int) (float64, error) {
	x, y, numRows, err := c.plis(lhsIndices, rhsIndices)
	if err != nil {
		return 0, err
	}

	if y.NumClusters() < 2 {
		return 0, nil
	}

	p1, p2 := computeP1P2(x.Clusters(), y.Clusters(), numRows)

	denom := 1 - p1
	if denom == 0 {
		// Unreachable given the shortcut above (Y constant implies
		// p1 == 1), kept as a guard against a division by zero.
		return 0, nil
	}
	return (p2 - p1) / denom, nil
}
