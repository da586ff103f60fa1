package cli

import (
	"github.com/spf13/cobra"
)

var pairsTop int

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Find the most similar pairs in the corpus",
	Args:  cobra.NoArgs,
	RunE:  runPairs,
}

func init() {
	pairsCmd.Flags().IntVarP(&pairsTop, "top", "n", 10, "number of pairs")
	rootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	pairs, err := e.TopPairs(pairsTop)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, pairs)
	}
	if len(pairs) == 0 {
		cmd.Println("No pairs found.")
		return nil
	}
	cmd.Println("Most similar pairs:")
	for i, p := range pairs {
		cmd.Printf("  [%d] %s - %s (%.3f)\n", i+1, p.First, p.Second, p.Score)
	}
	return nil
}
