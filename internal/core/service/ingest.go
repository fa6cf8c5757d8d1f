package service

import (
	"anekbot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Ingest runs the scrape pipeline once: fetch the page, extract jokes and
// persist them. Each stage stops the run when the previous one produced
// nothing usable.
type Ingest struct {
	fetcher   port.PageFetcher
	extractor port.JokeExtractor
	store     port.CorpusStore
}

func NewIngest(fetcher port.PageFetcher, extractor port.JokeExtractor, store port.CorpusStore) *Ingest {
	return &Ingest{fetcher: fetcher, extractor: extractor, store: store}
}

// Run returns the number of jokes written.
func (i *Ingest) Run(ctx context.Context) (int, error) {
	page, err := i.fetcher.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch stage: %w", err)
	}

	jokes, err := i.extractor.Extract(page)
	if err != nil {
		return 0, fmt.Errorf("extract stage: %w", err)
	}

	log.Info().Int("jokes", len(jokes)).Msg("extracted jokes")

	saved, err := i.store.Save(jokes)
	if err != nil {
		return 0, fmt.Errorf("persist stage: %w", err)
	}

	return saved, nil
}
