// Package main provides the entry point for the affinity CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/affinityhq/affinity/internal/cli"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Optional .env for AFFINITY_* overrides
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
