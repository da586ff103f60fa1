package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/affinityhq/affinity/internal/corpus"
	"github.com/affinityhq/affinity/internal/watcher"
	"github.com/affinityhq/affinity/pkg/affinity"
	"github.com/affinityhq/affinity/pkg/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the corpus file and reload on change",
	Long: `Keeps an engine loaded from the corpus file and rebuilds it whenever
the file changes, logging a summary after every reload. Stop with
Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	path, err := corpusFile()
	if err != nil {
		return err
	}

	w, err := watcher.New(path, cfg.WatchDebounce(), log.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Watch(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	e := affinity.New(cfg.Engine())
	log.Info().Str("file", w.Path()).Msg("Watching corpus")
	reloadCorpus(e, path)

	for {
		select {
		case <-quit:
			log.Info().Msg("Shutting down")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			reloadCorpus(e, path)
		}
	}
}

// reloadCorpus re-ingests and re-clusters the corpus file. Load and
// ingest failures are logged, not fatal: the previous corpus stays
// live and the next file change retries.
func reloadCorpus(e *affinity.Engine, path string) {
	people, err := corpus.LoadFile(path)
	if err != nil {
		log.Error().Err(err).Msg("Corpus reload failed")
		return
	}
	if err := e.IngestPeople(people); err != nil {
		log.Error().Err(err).Msg("Corpus ingest failed")
		return
	}

	st := e.Stats()
	ev := log.Info().Int("people", st.People).Int("vocabulary", st.VocabularySize)

	// The configured cluster count can exceed a shrunken corpus.
	k := min(cfg.Clusters, st.People)
	if _, err := e.Cluster(k, models.Method(cfg.Method)); err != nil {
		log.Warn().Err(err).Msg("Clustering failed")
	} else {
		ev = ev.Int("clusters", k)
	}

	if pairs, err := e.TopPairs(1); err == nil && len(pairs) > 0 {
		ev = ev.Str("closest_pair", pairs[0].First+" / "+pairs[0].Second)
	}
	ev.Msg("Corpus loaded")
}
