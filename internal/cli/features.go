package cli

import (
	"github.com/spf13/cobra"
)

var featuresTop int

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the terms that separate people the most",
	Args:  cobra.NoArgs,
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().IntVarP(&featuresTop, "top", "n", 0, "number of terms (default from config)")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	n := featuresTop
	if n <= 0 {
		n = cfg.TopTerms
	}
	terms, err := e.FeatureImportance(n)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, terms)
	}
	cmd.Println("Most discriminative terms:")
	for i, tw := range terms {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, tw.Term, tw.Weight)
	}
	return nil
}
