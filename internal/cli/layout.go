package cli

import (
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Project people onto a 2-D map with their clusters",
	Long: `Clusters the corpus, then projects every person onto the two leading
principal components of the feature space. The coordinates are suitable
for plotting; people with similar preferences land close together.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().IntVarP(&clusterCount, "clusters", "k", 0, "number of clusters (default from config)")
	layoutCmd.Flags().StringVarP(&clusterMethod, "method", "m", "", "clustering method: kmeans or hierarchical")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	k, method := clusterSettings()
	if _, err := e.Cluster(k, method); err != nil {
		return err
	}
	points, err := e.Layout()
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, points)
	}
	cmd.Printf("%-16s %10s %10s  %s\n", "NAME", "X", "Y", "CLUSTER")
	for _, p := range points {
		cmd.Printf("%-16s %10.3f %10.3f  %d\n", p.Name, p.X, p.Y, p.Cluster)
	}
	return nil
}
