package pli

// Cluster is an ordered sequence of row ids sharing identical values on
// some column subset. Stored clusters always have size > 1: singletons
// are inferred from total row count rather than stored.
type Cluster []int32

// Size returns the number of rows in the cluster.
func (c Cluster) Size() int {
	return len(c)
}

// IntersectSize returns the size of the intersection of two
// ascending-sorted clusters via a two-pointer merge. It never
// materializes the intersection itself, nor the Cartesian product of a
// and b.
func IntersectSize(a, b Cluster) int {
	i, j, count := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return count
}
