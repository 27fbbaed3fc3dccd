package calculator

// CalculateMuPlus returns mu-plus, the bias-corrected variant of tau
// that accounts for X's domain size. Returns 0 when rhs has fewer than
// 2 classes, or when lhs uniquely determines every row (x_domain == N,
// making mu-plus undefined and conventionally 0). The result is clamped
// to a minimum of 0; it is never clamped above 1, since the
// mathematical definition already guarantees mu-plus <= 1 and a value
// above 1 after floating-point error would indicate a bug rather than
// something to paper over.
func (c *Calculator) CalculateMuPlus(lhsIndices, rhsIndices []int) (float64, error) {
	x, y, numRows, err := c.plis(lhsIndices, rhsIndices)
	if err != nil {
		return 0, err
	}

	if y.NumClusters() < 2 {
		return 0, nil
	}

	xDomain := x.NumClusters()
	if xDomain == numRows {
		return 0, nil
	}

	p1, p2 := computeP1P2(x.Clusters(), y.Clusters(), numRows)

	mu := 1 - ((1-p2)/(1-p1))*(float64(numRows-1)/float64(numRows-xDomain))
	if mu < 0 {
		mu = 0
	}
	return mu, nil
}
