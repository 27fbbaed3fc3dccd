package batch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRun_AllJobsSucceed(t *testing.T) {
	pathA := writeCSV(t, "a.csv", "x,y\n1,1\n1,1\n2,2\n")
	pathB := writeCSV(t, "b.csv", "x,y\n1,9\n1,1\n2,2\n")

	jobs := []Job{
		{Path: pathA, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true},
		{Path: pathB, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true},
	}

	results, err := Run(jobs, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.InDelta(t, 0.0, results[0].G2, 1e-12)

	assert.NoError(t, results[1].Err)
	assert.Greater(t, results[1].G2, 0.0)
}

func TestRun_OneFailureDoesNotStopOthers(t *testing.T) {
	good := writeCSV(t, "good.csv", "x,y\n1,1\n2,2\n")
	missing := filepath.Join(t.TempDir(), "missing.csv")

	jobs := []Job{
		{Path: missing, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true},
		{Path: good, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true},
	}

	results, err := Run(jobs, 2, nil)
	require.Error(t, err)
	require.Len(t, results, 2)

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestRun_PreservesJobOrder(t *testing.T) {
	var jobs []Job
	var paths []string
	for i := 0; i < 8; i++ {
		p := writeCSV(t, "f.csv", "x,y\n1,1\n2,2\n")
		paths = append(paths, p)
		jobs = append(jobs, Job{Path: p, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true})
	}

	results, err := Run(jobs, 4, nil)
	require.NoError(t, err)
	require.Len(t, results, 8)
	for i, r := range results {
		assert.Equal(t, paths[i], r.Job.Path)
	}
}

func TestRun_OnResultCalledOncePerJob(t *testing.T) {
	var jobs []Job
	for i := 0; i < 5; i++ {
		p := writeCSV(t, "f.csv", "x,y\n1,1\n2,2\n")
		jobs = append(jobs, Job{Path: p, LHS: []int{0}, RHS: []int{1}, NullsAreEqual: true})
	}

	var mu sync.Mutex
	count := 0
	_, err := Run(jobs, 3, func(Result) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
