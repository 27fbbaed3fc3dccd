// Package batch runs AFD metric jobs for many files (or many column
// pairs within one file) concurrently. Each job owns its own Relation
// and Calculator — independent (X, Y) pairs on independent calculator
// copies rather than sharing mutable state across goroutines.
package batch

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/relmetrics/afdmetric/internal/calculator"
	"github.com/relmetrics/afdmetric/internal/ingest"
)

// Job names one AFD metric computation: load Path, then evaluate
// LHS -> RHS over it.
type Job struct {
	Path          string
	LHS           []int
	RHS           []int
	NullsAreEqual bool
}

// Result holds the outcome of one Job. Err is set instead of the metric
// fields when the job failed; a failed job never aborts the rest of the
// batch.
type Result struct {
	Job    Job
	G2     float64
	Tau    float64
	MuPlus float64
	FI     float64
	Err    error
}

// Run evaluates every job, using up to concurrency goroutines at a time
// (runtime.NumCPU() if concurrency <= 0). It returns one Result per job,
// in the same order as jobs, plus a combined error aggregating every
// per-job failure (nil if all jobs succeeded). If onResult is non-nil, it
// is invoked once per completed job (from whichever goroutine finished
// it) for callers that want to drive a progress indicator.
func Run(jobs []Job, concurrency int, onResult func(Result)) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			result := runJob(job)
			results[i] = result
			if onResult != nil {
				onResult(result)
			}
			// Per-job errors are carried in the Result, not returned here:
			// g.Wait reports only the first returned error, while the
			// combined error below reports every failed job.
			return nil
		})
	}
	_ = g.Wait()

	var combined *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			combined = multierror.Append(combined, fmt.Errorf("%s: %w", r.Job.Path, r.Err))
		}
	}
	return results, combined.ErrorOrNil()
}

func runJob(job Job) Result {
	table, err := ingest.LoadCSV(job.Path)
	if err != nil {
		return Result{Job: job, Err: err}
	}

	calc, err := calculator.NewFromTable(table.Columns, job.NullsAreEqual)
	if err != nil {
		return Result{Job: job, Err: err}
	}

	g2, err := calc.CalculateG2(job.LHS, job.RHS)
	if err != nil {
		return Result{Job: job, Err: err}
	}
	tau, err := calc.CalculateTau(job.LHS, job.RHS)
	if err != nil {
		return Result{Job: job, Err: err}
	}
	mu, err := calc.CalculateMuPlus(job.LHS, job.RHS)
	if err != nil {
		return Result{Job: job, Err: err}
	}
	fi, err := calc.CalculateFI(job.LHS, job.RHS)
	if err != nil {
		return Result{Job: job, Err: err}
	}

	return Result{Job: job, G2: g2, Tau: tau, MuPlus: mu, FI: fi}
}
