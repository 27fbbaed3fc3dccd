package pli

// ProbingTable is a dense, row-indexed array whose entry at position i is
// the class id of row i within the PLI it was built from. Class ids are
// dense, stable for the life of the PLI, and otherwise arbitrary.
type ProbingTable struct {
	classOf    []int32
	numClasses int
}

// ClassOf returns the class id of row i. Lookup is O(1).
func (pt *ProbingTable) ClassOf(row int) int32 {
	return pt.classOf[row]
}

// NumClasses returns the number of distinct classes represented in the
// table, including singletons.
func (pt *ProbingTable) NumClasses() int {
	return pt.numClasses
}

// buildProbingTable assigns a fresh dense id to every class induced by
// clusters, including one id per singleton row not covered by any
// stored cluster. Singleton ids are assigned in ascending
// row order after the clustered ids, which is an implementation detail:
// callers must not depend on the absolute id values, only on equality.
func buildProbingTable(numRows int, clusters []Cluster) *ProbingTable {
	classOf := make([]int32, numRows)
	covered := make([]bool, numRows)

	nextID := int32(0)
	for _, c := range clusters {
		id := nextID
		nextID++
		for _, row := range c {
			classOf[row] = id
			covered[row] = true
		}
	}
	for row := 0; row < numRows; row++ {
		if !covered[row] {
			classOf[row] = nextID
			nextID++
		}
	}

	return &ProbingTable{classOf: classOf, numClasses: int(nextID)}
}

// ClassFrequencies counts, for the rows in cluster, how many fall into
// each class of pt. Used by G2 to detect whether an X-cluster maps
// uniformly onto a single Y-class.
func ClassFrequencies(cluster Cluster, pt *ProbingTable) map[int32]int {
	freq := make(map[int32]int, len(cluster))
	for _, row := range cluster {
		freq[pt.ClassOf(int(row))]++
	}
	return freq
}
