package main

import (
	"anekbot/internal/adapters/file"
	"anekbot/internal/adapters/scraper"
	"anekbot/internal/config"
	"anekbot/internal/core/service"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newScrapeCmd(load func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Download the joke page and rewrite the joke file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return scrape(load())
		},
	}
}

func scrape(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := scraper.NewFetcher(cfg.Scraper.URL, cfg.Scraper.Timeout,
		scraper.WithUserAgent(cfg.Scraper.UserAgent),
		scraper.WithJitter(cfg.Scraper.JitterMin, cfg.Scraper.JitterMax))

	ingest := service.NewIngest(fetcher, scraper.NewExtractor(cfg.Scraper.BlockClass), file.NewStore(cfg.JokesFile))

	saved, err := ingest.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("url", cfg.Scraper.URL).Str("path", cfg.JokesFile).Msg("scrape failed")
		return err
	}

	log.Info().Int("jokes", saved).Str("path", cfg.JokesFile).Msg("joke file updated")

	return nil
}
