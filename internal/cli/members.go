package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:   "members [cluster id]",
	Short: "List the people in one cluster",
	Args:  cobra.ExactArgs(1),
	RunE:  runMembers,
}

func init() {
	membersCmd.Flags().IntVarP(&clusterCount, "clusters", "k", 0, "number of clusters (default from config)")
	membersCmd.Flags().StringVarP(&clusterMethod, "method", "m", "", "clustering method: kmeans or hierarchical")
	rootCmd.AddCommand(membersCmd)
}

func runMembers(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("cluster id must be a number, got %q", args[0])
	}

	e, err := loadEngine()
	if err != nil {
		return err
	}
	k, method := clusterSettings()
	if _, err := e.Cluster(k, method); err != nil {
		return err
	}
	members, err := e.ClusterMembers(id)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, members)
	}
	if len(members) == 0 {
		cmd.Printf("Cluster %d is empty.\n", id)
		return nil
	}
	cmd.Printf("Cluster %d: %s\n", id, strings.Join(members, ", "))
	return nil
}
