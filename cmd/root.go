package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var nullsAreEqual bool

var rootCmd = &cobra.Command{
	Use:   "afdmetric",
	Short: "Approximate functional dependency metrics for CSV data",
	Long: `afdmetric computes G2, Goodman-Kruskal tau, mu-plus, and the
fraction of information (FI) for a candidate functional dependency
lhs -> rhs over columns of a CSV relation.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&nullsAreEqual, "nulls-equal", true,
		"treat null (empty) cells as mutually equal when building position list indices")
}
