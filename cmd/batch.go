package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/relmetrics/afdmetric/internal/batch"
	"github.com/relmetrics/afdmetric/internal/connectors"
	"github.com/relmetrics/afdmetric/internal/ingest"
)

var (
	batchExt       string
	batchRecursive bool
	batchWorkers   int
	batchLHS       string
	batchRHS       string
	batchMinSize   int64
	batchMaxSize   int64
)

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Compute one AFD dependency across every matching CSV file in a directory",
	Long: `batch discovers files under a directory and evaluates the same
--lhs -> --rhs dependency independently against each one, reporting a
row per file. Files are assumed to share the same header row; columns
are resolved against the first discovered file's headers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		files, err := connectors.DiscoverFiles(dir, batchExt, connectors.DiscoveryOptions{
			Recursive: batchRecursive,
			MinSize:   batchMinSize,
			MaxSize:   batchMaxSize,
		})
		if err != nil {
			return fmt.Errorf("discovering files in %s: %w", dir, err)
		}

		headers, err := firstFileHeaders(files[0].Path)
		if err != nil {
			return err
		}
		lhs, err := resolveColumns(headers, batchLHS)
		if err != nil {
			return fmt.Errorf("--lhs: %w", err)
		}
		rhs, err := resolveColumns(headers, batchRHS)
		if err != nil {
			return fmt.Errorf("--rhs: %w", err)
		}

		jobs := make([]batch.Job, len(files))
		for i, f := range files {
			jobs[i] = batch.Job{Path: f.Path, LHS: lhs, RHS: rhs, NullsAreEqual: nullsAreEqual}
		}

		bar := progressbar.NewOptions(len(jobs),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Computing AFD metrics..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Println() }),
		)

		results, runErr := batch.Run(jobs, batchWorkers, func(batch.Result) {
			bar.Add(1)
		})

		fmt.Printf("%-8s %-8s %-8s %-8s %-8s  %s\n", "G2", "tau", "mu+", "FI", "status", "file")
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("%-8s %-8s %-8s %-8s %-8s  %s\n", "-", "-", "-", "-", "error", r.Job.Path)
				continue
			}
			fmt.Printf("%-8.4f %-8.4f %-8.4f %-8.4f %-8s  %s\n", r.G2, r.Tau, r.MuPlus, r.FI, "ok", r.Job.Path)
		}

		return runErr
	},
}

// firstFileHeaders loads path in full with ingest.LoadCSV and returns its
// header row, fixing the schema the rest of the batch resolves
// --lhs/--rhs against.
func firstFileHeaders(path string) ([]string, error) {
	table, err := ingest.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("reading headers from %s: %w", path, err)
	}
	return table.Headers, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchExt, "ext", "csv", "file extension to match")
	batchCmd.Flags().BoolVar(&batchRecursive, "recursive", false, "scan subdirectories")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "max concurrent files (default: number of CPUs)")
	batchCmd.Flags().Int64Var(&batchMinSize, "min-size", 0, "skip files smaller than this many bytes")
	batchCmd.Flags().Int64Var(&batchMaxSize, "max-size", 0, "skip files larger than this many bytes (0 means no limit)")
	batchCmd.Flags().StringVar(&batchLHS, "lhs", "", "determinant column(s), by name or index, comma-separated")
	batchCmd.Flags().StringVar(&batchRHS, "rhs", "", "dependent column(s), by name or index, comma-separated")
	batchCmd.MarkFlagRequired("lhs")
	batchCmd.MarkFlagRequired("rhs")
	rootCmd.AddCommand(batchCmd)
}
