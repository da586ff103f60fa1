package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	st := e.Stats()
	if asJSON {
		return printJSON(cmd, st)
	}
	cmd.Printf("People:     %d\n", st.People)
	cmd.Printf("Vocabulary: %d terms\n", st.VocabularySize)
	cmd.Printf("Version:    %s\n", st.Version)
	return nil
}
