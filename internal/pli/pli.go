// Package pli implements the Position List Index: the partition of a
// relation's rows induced by equality of a column-subset tuple, along
// with the lazily materialized artifacts (probing table, entropy) the
// AFD metric calculator builds on top of it.
package pli

import (
	"math"
	"sort"
	"sync"
)

// PLI is the equivalence-class partition of row ids [0,numRows) induced
// by tuple equality on some column subset. Only non-singleton classes
// are stored; singleton classes are inferred from numRows minus the sum
// of stored cluster sizes.
type PLI struct {
	numRows  int
	clusters []Cluster

	probingOnce sync.Once
	probing     *ProbingTable

	entropyOnce sync.Once
	entropy     float64
}

// NumRows returns N, propagated from the owning relation.
func (p *PLI) NumRows() int {
	return p.numRows
}

// Clusters returns the stored, non-singleton clusters. Rows within a
// cluster are ascending by row id; callers must not rely on ordering
// across clusters.
func (p *PLI) Clusters() []Cluster {
	return p.clusters
}

// NumClusters returns the count of all equivalence classes, including
// singletons. It is derived rather than tracked through construction:
// the singleton count is always numRows minus the rows covered by
// stored clusters, so this formula is correct regardless of how the PLI
// was built (single column or intersection).
func (p *PLI) NumClusters() int {
	covered := 0
	for _, c := range p.clusters {
		covered += c.Size()
	}
	return len(p.clusters) + (p.numRows - covered)
}

// ProbingTable lazily builds and memoizes the dense row->class-id view
// of this PLI. Safe for concurrent use, including racing first calls:
// sync.Once serializes the build, which a bare nil check would not.
func (p *PLI) ProbingTable() *ProbingTable {
	p.probingOnce.Do(func() {
		p.probing = buildProbingTable(p.numRows, p.clusters)
	})
	return p.probing
}

// Entropy computes H(S) = ln(N) - (1/N)*sum(size*ln(size)) over stored
// clusters, which is algebraically equal to -sum((s/N)*ln(s/N)) over
// *all* classes including singletons, since a singleton's term is
// 1*ln(1) = 0 and so never needs to be materialized.
func (p *PLI) Entropy() float64 {
	p.entropyOnce.Do(func() {
		n := float64(p.numRows)
		var sum float64
		for _, c := range p.clusters {
			s := float64(c.Size())
			sum += s * math.Log(s)
		}
		p.entropy = math.Log(n) - sum/n
	})
	return p.entropy
}

// FromColumn builds a PLI over a single column's string-typed cell
// values, grouping row indices by value equality. A cell equal to the
// empty string is treated as null; nullsAreEqual selects whether all
// nulls share one class or each is its own singleton.
func FromColumn(values []string, nullsAreEqual bool) *PLI {
	groups := groupRowsByValue(values)

	clusters := make([]Cluster, 0, len(groups.nonNull))
	for _, rows := range groups.nonNull {
		if len(rows) > 1 {
			clusters = append(clusters, Cluster(rows))
		}
	}

	if nullsAreEqual {
		if len(groups.null) > 1 {
			clusters = append(clusters, Cluster(groups.null))
		}
	}
	// nullsAreEqual == false: each null row is its own singleton and is
	// never stored.

	return &PLI{numRows: len(values), clusters: clusters}
}

// Intersect builds PLI(A u B) by splitting each of a's stored clusters
// according to b's class ids. A's implicit singletons are skipped: a
// class already of size 1 cannot gain or lose members by intersecting
// with anything, so it remains a singleton in the result and needs no
// work.
func Intersect(a, b *PLI) *PLI {
	if a.numRows != b.numRows {
		panic("pli: Intersect called on PLIs with different row counts")
	}

	ptB := b.ProbingTable()

	var result []Cluster
	buckets := make(map[int32][]int32)
	for _, c := range a.clusters {
		for k := range buckets {
			delete(buckets, k)
		}
		for _, row := range c {
			classID := ptB.ClassOf(int(row))
			buckets[classID] = append(buckets[classID], row)
		}
		// Rows in c are ascending by row id (invariant preserved by
		// FromColumn/Intersect), so each bucket's append order is also
		// ascending — no re-sort needed before the next intersection.
		for _, sub := range buckets {
			if len(sub) > 1 {
				result = append(result, Cluster(append([]int32(nil), sub...)))
			}
		}
	}

	return &PLI{numRows: a.numRows, clusters: result}
}

// SortedCopy returns a clone of the cluster's rows, sorted ascending.
// Clusters built by FromColumn/Intersect are already ascending; this
// exists for callers (the calculator) that must guarantee sortedness
// without trusting internal invariants across package boundaries.
func SortedCopy(c Cluster) Cluster {
	out := append(Cluster(nil), c...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type rowGroups struct {
	nonNull map[string][]int32
	null    []int32
}

// groupRowsByValue buckets row indices by their string cell value.
func groupRowsByValue(values []string) rowGroups {
	nonNull := make(map[string][]int32)
	var nullRows []int32

	for i, v := range values {
		if v == "" {
			nullRows = append(nullRows, int32(i))
			continue
		}
		nonNull[v] = append(nonNull[v], int32(i))
	}

	return rowGroups{nonNull: nonNull, null: nullRows}
}
