package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/affinityhq/affinity/pkg/affinity"
	"github.com/affinityhq/affinity/pkg/models"
)

// demoPeople is the built-in sample corpus: eight people with
// overlapping interests (readers, cooks, tech folks, outdoor types).
var demoPeople = []models.Person{
	{Name: "alice", Preferences: "I love reading books, especially science fiction and fantasy novels. I enjoy hiking and outdoor activities."},
	{Name: "ben", Preferences: "I'm passionate about technology, programming, and video games. I like sci-fi movies and board games."},
	{Name: "carla", Preferences: "I enjoy cooking, trying new recipes, and exploring different cuisines. I love traveling and photography."},
	{Name: "dmitri", Preferences: "I'm into fitness, yoga, and healthy living. I enjoy nature walks and meditation."},
	{Name: "elena", Preferences: "I'm a sports enthusiast, especially football and basketball. I enjoy watching games and playing fantasy sports."},
	{Name: "farid", Preferences: "I enjoy reading mystery novels and crime thrillers. I like solving puzzles and playing chess."},
	{Name: "grace", Preferences: "I'm passionate about cooking and experimenting with new flavors. I enjoy food photography and blogging."},
	{Name: "henry", Preferences: "I'm interested in technology, artificial intelligence, and machine learning. I enjoy coding and building projects."},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a tour on a built-in sample corpus",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	engCfg := cfg.Engine()
	engCfg.MaxFeatures = 500

	e := affinity.New(engCfg)
	if err := e.IngestPeople(demoPeople); err != nil {
		return err
	}

	cmd.Println("=== People Matching Demo ===")
	cmd.Println()
	cmd.Printf("Added %d people to the engine.\n", len(demoPeople))
	cmd.Println()

	labels, err := e.Cluster(3, models.MethodKMeans)
	if err != nil {
		return err
	}
	cmd.Printf("Clustered %d people into 3 groups:\n", len(labels))
	for id := 0; id < 3; id++ {
		members, err := e.ClusterMembers(id)
		if err != nil {
			return err
		}
		cmd.Printf("  Cluster %d: %s\n", id, strings.Join(members, ", "))
	}

	cmd.Println()
	cmd.Println("Top 3 people similar to carla:")
	matches, err := e.SimilarTo("carla", 3)
	if err != nil {
		return err
	}
	for _, m := range matches {
		cmd.Printf("  %s: %.3f\n", m.Name, m.Score)
	}

	cmd.Println()
	cmd.Println("Top 5 most similar pairs:")
	pairs, err := e.TopPairs(5)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		cmd.Printf("  %s - %s: %.3f\n", p.First, p.Second, p.Score)
	}

	cmd.Println()
	cmd.Println("Top 5 distinguishing terms:")
	terms, err := e.FeatureImportance(5)
	if err != nil {
		return err
	}
	for _, tw := range terms {
		cmd.Printf("  %s: %.3f\n", tw.Term, tw.Weight)
	}
	return nil
}
