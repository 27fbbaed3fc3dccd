package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/relmetrics/afdmetric/internal/calculator"
	"github.com/relmetrics/afdmetric/internal/ingest"
)

var (
	measureLHS string
	measureRHS string
)

var measureCmd = &cobra.Command{
	Use:   "measure [csv file]",
	Short: "Compute AFD metrics for one candidate dependency in a single file",
	Long: `measure loads a CSV file, builds its Position List Indices, and
reports G2, tau, mu-plus, and FI for the dependency --lhs -> --rhs.

Columns may be named by header (--lhs customer_id) or by zero-based
index (--lhs 0); a comma-separated list names a column subset:

  afdmetric measure customers.csv --lhs zip,city --rhs state`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		start := time.Now()
		table, err := ingest.LoadCSV(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		loadTime := time.Since(start)

		lhs, err := resolveColumns(table.Headers, measureLHS)
		if err != nil {
			return fmt.Errorf("--lhs: %w", err)
		}
		rhs, err := resolveColumns(table.Headers, measureRHS)
		if err != nil {
			return fmt.Errorf("--rhs: %w", err)
		}

		calc, err := calculator.NewFromTable(table.Columns, nullsAreEqual)
		if err != nil {
			return err
		}

		g2, err := calc.CalculateG2(lhs, rhs)
		if err != nil {
			return err
		}
		tau, err := calc.CalculateTau(lhs, rhs)
		if err != nil {
			return err
		}
		mu, err := calc.CalculateMuPlus(lhs, rhs)
		if err != nil {
			return err
		}
		fi, err := calc.CalculateFI(lhs, rhs)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s rows, loaded in %s)\n", path, humanize.Comma(int64(len(table.Columns[0]))), loadTime.Round(time.Millisecond))
		fmt.Printf("  %s -> %s\n", columnNames(table.Headers, lhs), columnNames(table.Headers, rhs))
		fmt.Printf("  G2      = %.6f\n", g2)
		fmt.Printf("  tau     = %.6f\n", tau)
		fmt.Printf("  mu+     = %.6f\n", mu)
		fmt.Printf("  FI      = %.6f\n", fi)
		return nil
	},
}

// resolveColumns parses a comma-separated --lhs/--rhs flag value into
// column indices, accepting either a header name or a bare integer for
// each element.
func resolveColumns(headers []string, spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("at least one column is required")
	}

	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		byName[h] = i
	}

	var indices []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx, ok := byName[part]; ok {
			indices = append(indices, idx)
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(part, "%d", &idx); err != nil || idx < 0 || idx >= len(headers) {
			return nil, fmt.Errorf("unknown column %q", part)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func columnNames(headers []string, indices []int) string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = headers[idx]
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func init() {
	measureCmd.Flags().StringVar(&measureLHS, "lhs", "", "determinant column(s), by name or index, comma-separated")
	measureCmd.Flags().StringVar(&measureRHS, "rhs", "", "dependent column(s), by name or index, comma-separated")
	measureCmd.MarkFlagRequired("lhs")
	measureCmd.MarkFlagRequired("rhs")
	rootCmd.AddCommand(measureCmd)
}
