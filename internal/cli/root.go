// Package cli implements the affinity command line interface.
package cli

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/affinityhq/affinity/internal/config"
	"github.com/affinityhq/affinity/internal/corpus"
	"github.com/affinityhq/affinity/pkg/affinity"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is loaded before any command runs.
var cfg *config.Config

var (
	cfgPath    string
	corpusPath string
	asJSON     bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "affinity",
	Short: "Find similar people from free-text preferences",
	Long: `affinity builds TF-IDF profiles from people's preference texts and
answers similarity and clustering queries over them: nearest matches,
the closest pairs overall, preference clusters and the terms that
separate people the most.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
		} else {
			cfg, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default affinity.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&corpusPath, "corpus", "f", "", "corpus file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// corpusFile returns the corpus path from the flag or config file.
func corpusFile() (string, error) {
	if corpusPath != "" {
		return corpusPath, nil
	}
	if cfg.CorpusPath != "" {
		return cfg.CorpusPath, nil
	}
	return "", errors.New("no corpus file: pass --corpus or set corpus_path in the config")
}

// loadEngine ingests the corpus file into a fresh engine.
func loadEngine() (*affinity.Engine, error) {
	path, err := corpusFile()
	if err != nil {
		return nil, err
	}
	people, err := corpus.LoadFile(path)
	if err != nil {
		return nil, err
	}

	e := affinity.New(cfg.Engine())
	if err := e.IngestPeople(people); err != nil {
		return nil, err
	}
	log.Debug().Int("people", len(people)).Str("file", path).Msg("Corpus ingested")
	return e, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
