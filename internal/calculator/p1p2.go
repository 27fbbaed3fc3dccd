package calculator

import "github.com/relmetrics/afdmetric/internal/pli"

// computeP1P2 computes the two Goodman-Kruskal quantities tau and
// mu-plus share:
//
//	p1 = (sum |y|^2) / N^2                        over all Y classes
//	p2 = (1/N) * sum_x sum_y (|x n y|^2 / |x|)    over all X, Y classes
//
// both "all classes" sums running over stored clusters plus the
// classes implied by singletons: a singleton X-row contributes
// |x n y|^2/|x| = 1 to p2 for whichever Y-class contains it (stored or
// singleton), so the whole
// singleton-X contribution collapses to one term, (N - sum of stored X
// cluster sizes), instead of an explicit per-row loop. The same
// collapse is used per stored X-cluster for the rows inside it that
// land on a Y-singleton.
func computeP1P2(xClusters, yClusters []pli.Cluster, numRows int) (p1, p2 float64) {
	n := float64(numRows)

	sortedY := make([]pli.Cluster, len(yClusters))
	storedYSize := 0
	var p1Raw float64
	for i, y := range yClusters {
		sortedY[i] = pli.SortedCopy(y)
		size := float64(y.Size())
		p1Raw += size * size
		storedYSize += y.Size()
	}
	p1Raw += float64(numRows - storedYSize) // each Y-singleton contributes 1^2
	p1 = p1Raw / (n * n)

	var p2Raw float64
	storedXSize := 0
	for _, x := range xClusters {
		sortedX := pli.SortedCopy(x)
		size := x.Size()
		storedXSize += size

		matched := 0
		var sum float64
		for _, y := range sortedY {
			inter := pli.IntersectSize(sortedX, y)
			if inter == 0 {
				continue
			}
			matched += inter
			sum += float64(inter) * float64(inter) / float64(size)
		}
		// Rows of x that land on a Y-singleton each contribute
		// 1^2/|x| = 1/|x| to p2; there are (|x| - matched) of them.
		sum += float64(size-matched) / float64(size)

		p2Raw += sum
	}
	p2Raw += float64(numRows - storedXSize) // each X-singleton contributes exactly 1
	p2 = p2Raw / n

	return p1, p2
}
