package cli

import (
	"github.com/spf13/cobra"
)

var similarTop int

var similarCmd = &cobra.Command{
	Use:   "similar [name]",
	Short: "Find the people most similar to someone",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarTop, "top", "n", 0, "number of matches (default from config)")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	k := similarTop
	if k <= 0 {
		k = cfg.TopK
	}
	matches, err := e.SimilarTo(args[0], k)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, matches)
	}
	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}
	cmd.Printf("People most similar to %s:\n", args[0])
	for i, m := range matches {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, m.Name, m.Score)
	}
	return nil
}
