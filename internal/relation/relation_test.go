package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmetrics/afdmetric/internal/indexset"
)

func sampleColumns() [][]string {
	return [][]string{
		{"1", "1", "2", "2", "3"}, // col 0
		{"a", "a", "b", "b", "c"}, // col 1
		{"x", "y", "x", "y", "z"}, // col 2
	}
}

func TestNew_RejectsEmptyColumns(t *testing.T) {
	_, err := New(nil, true)
	assert.Error(t, err)
}

func TestNew_RejectsMismatchedColumnLengths(t *testing.T) {
	_, err := New([][]string{{"a", "b"}, {"c"}}, true)
	assert.Error(t, err)
}

func TestNew_RejectsZeroRows(t *testing.T) {
	_, err := New([][]string{{}, {}}, true)
	assert.Error(t, err)
}

func TestRelation_NumRowsAndColumns(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	assert.Equal(t, 5, r.NumRows())
	assert.Equal(t, 3, r.NumColumns())
}

func TestRelation_PLI_SingleColumn(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	idx, err := indexset.New([]int{1}, r.NumColumns())
	require.NoError(t, err)

	p, err := r.PLI(idx)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumClusters()) // {0,1}, {2,3}, {4}
}

func TestRelation_PLI_MultiColumnIntersection(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	idx, err := indexset.New([]int{1, 2}, r.NumColumns())
	require.NoError(t, err)

	p, err := r.PLI(idx)
	require.NoError(t, err)
	// col1 groups {0,1},{2,3},{4}; col2 groups {0,2},{1,3},{4}.
	// Intersection: every row ends up alone -> no stored clusters.
	assert.Empty(t, p.Clusters())
	assert.Equal(t, 5, p.NumClusters())
}

func TestRelation_PLI_CachedByIndexSet(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	idx, err := indexset.New([]int{0, 1}, r.NumColumns())
	require.NoError(t, err)

	first, err := r.PLI(idx)
	require.NoError(t, err)
	second, err := r.PLI(idx)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated PLI() for an equal index set must hit the cache")
}

func TestRelation_PLI_RejectsOutOfRangeIndex(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	_, err = r.PLI(indexset.IndexSet{99})
	assert.Error(t, err)
}

func TestRelation_PLI_OrderDoesNotChangeResultButCachesSeparately(t *testing.T) {
	r, err := New(sampleColumns(), true)
	require.NoError(t, err)

	a, err := indexset.New([]int{0, 1}, r.NumColumns())
	require.NoError(t, err)
	b, err := indexset.New([]int{1, 0}, r.NumColumns())
	require.NoError(t, err)

	pa, err := r.PLI(a)
	require.NoError(t, err)
	pb, err := r.PLI(b)
	require.NoError(t, err)

	assert.Equal(t, pa.NumClusters(), pb.NumClusters())
	assert.NotSame(t, pa, pb, "index sets differing only in order are cached under separate keys")
}
