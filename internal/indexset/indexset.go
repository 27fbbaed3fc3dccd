// Package indexset defines the column-index-set type shared by the
// relation, calculator, and CLI layers.
package indexset

import "fmt"

// IndexSet is a non-empty, ordered sequence of unique column indices.
type IndexSet []int

// New validates and returns an IndexSet. It rejects empty sets, negative
// indices, indices at or beyond numColumns, and duplicates.
func New(indices []int, numColumns int) (IndexSet, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("indexset: empty index set")
	}

	seen := make(map[int]struct{}, len(indices))
	out := make(IndexSet, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= numColumns {
			return nil, fmt.Errorf("indexset: index %d out of range [0,%d)", idx, numColumns)
		}
		if _, dup := seen[idx]; dup {
			return nil, fmt.Errorf("indexset: duplicate index %d", idx)
		}
		seen[idx] = struct{}{}
		out[i] = idx
	}
	return out, nil
}

// Key returns a value usable as a map key that is equal for two
// IndexSets containing the same indices in the same order. Relation's
// PLI cache is keyed by value-equality on IndexSet, and order is part
// of that identity since it is also how callers name a subset.
func (s IndexSet) Key() string {
	// Small, fixed-width encoding; indices are plain column positions so
	// collisions across lengths are not a concern at realistic column
	// counts.
	b := make([]byte, 0, len(s)*5)
	for _, idx := range s {
		b = append(b, byte(idx>>24), byte(idx>>16), byte(idx>>8), byte(idx), ',')
	}
	return string(b)
}

func (s IndexSet) String() string {
	return fmt.Sprintf("%v", []int(s))
}
