package main

import (
	"anekbot/internal/config"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var pretty bool

	root := &cobra.Command{
		Use:           "anekbot",
		Short:         "Telegram bot that tells jokes, and the scraper that collects them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.toml)")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human readable console logs")

	load := func() config.Config {
		if pretty {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}

		log.Info().Msg("reading config...")
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read config")
		}

		zerolog.SetGlobalLevel(cfg.Level())

		return cfg
	}

	root.AddCommand(newServeCmd(load), newScrapeCmd(load))

	return root
}
