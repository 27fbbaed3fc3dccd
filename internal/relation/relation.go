// Package relation implements an immutable, columnar view over a table
// that builds and caches Position List Indices for arbitrary column
// subsets.
package relation

import (
	"fmt"
	"sync"

	"github.com/relmetrics/afdmetric/internal/indexset"
	"github.com/relmetrics/afdmetric/internal/pli"
)

// Relation owns the per-column value arrays of a table and lazily
// builds/caches PLIs over column subsets. It is created once per input
// table and is immutable thereafter.
type Relation struct {
	numRows       int
	columns       [][]string // columns[c][row] = cell value, "" = null
	nullsAreEqual bool

	columnPLIOnce []sync.Once
	columnPLI     []*pli.PLI

	cacheMu sync.Mutex
	cache   map[string]*pli.PLI
}

// New builds a Relation from columnar data. columns[c] must all have
// the same length, the row count N. nullsAreEqual fixes the null
// semantics for every PLI this relation ever builds.
func New(columns [][]string, nullsAreEqual bool) (*Relation, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("relation: empty dataset: AFD metric calculation is meaningless")
	}
	numRows := len(columns[0])
	for i, col := range columns {
		if len(col) != numRows {
			return nil, fmt.Errorf("relation: column %d has %d rows, expected %d", i, len(col), numRows)
		}
	}
	if numRows == 0 {
		return nil, fmt.Errorf("relation: empty dataset: AFD metric calculation is meaningless")
	}

	return &Relation{
		numRows:       numRows,
		columns:       columns,
		nullsAreEqual: nullsAreEqual,
		columnPLIOnce: make([]sync.Once, len(columns)),
		columnPLI:     make([]*pli.PLI, len(columns)),
		cache:         make(map[string]*pli.PLI),
	}, nil
}

// NumRows returns N.
func (r *Relation) NumRows() int {
	return r.numRows
}

// NumColumns returns the number of columns in the relation.
func (r *Relation) NumColumns() int {
	return len(r.columns)
}

// PLI returns the Position List Index over the given column subset,
// rejecting out-of-range indices. Results are cached keyed by
// value-equality on the index set; the cache is filled lazily under a
// mutex. Two concurrent first requests for the same index set may each
// build the PLI, and the later one is the one kept in the cache.
func (r *Relation) PLI(indices indexset.IndexSet) (*pli.PLI, error) {
	validated, err := indexset.New(indices, len(r.columns))
	if err != nil {
		return nil, err
	}

	key := validated.Key()

	r.cacheMu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.cacheMu.Unlock()
		return cached, nil
	}
	r.cacheMu.Unlock()

	result := r.columnPLIAt(validated[0])
	for _, col := range validated[1:] {
		result = pli.Intersect(result, r.columnPLIAt(col))
	}

	r.cacheMu.Lock()
	r.cache[key] = result
	r.cacheMu.Unlock()

	return result, nil
}

// columnPLIAt builds (once) and returns the single-column PLI for
// column idx, memoized so that multi-column PLI requests sharing a
// column don't rebuild it.
func (r *Relation) columnPLIAt(idx int) *pli.PLI {
	r.columnPLIOnce[idx].Do(func() {
		r.columnPLI[idx] = pli.FromColumn(r.columns[idx], r.nullsAreEqual)
	})
	return r.columnPLI[idx]
}
