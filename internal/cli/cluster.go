package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/affinityhq/affinity/pkg/models"
)

var (
	clusterCount  int
	clusterMethod string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group people into preference clusters",
	Args:  cobra.NoArgs,
	RunE:  runCluster,
}

func init() {
	clusterCmd.Flags().IntVarP(&clusterCount, "clusters", "k", 0, "number of clusters (default from config)")
	clusterCmd.Flags().StringVarP(&clusterMethod, "method", "m", "", "clustering method: kmeans or hierarchical")
	rootCmd.AddCommand(clusterCmd)
}

// clusterSettings resolves the cluster count and method from flags,
// falling back to the config file.
func clusterSettings() (int, models.Method) {
	k := clusterCount
	if k <= 0 {
		k = cfg.Clusters
	}
	method := clusterMethod
	if method == "" {
		method = cfg.Method
	}
	return k, models.Method(method)
}

func runCluster(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	k, method := clusterSettings()
	labels, err := e.Cluster(k, method)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, labels)
	}
	cmd.Printf("Clustered %d people into %d groups (%s):\n", len(labels), k, method)
	for id := 0; id < k; id++ {
		members, err := e.ClusterMembers(id)
		if err != nil {
			return err
		}
		cmd.Printf("  Cluster %d: %s\n", id, strings.Join(members, ", "))
	}
	return nil
}
