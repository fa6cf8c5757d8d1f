package port

import (
	"anekbot/internal/core/domain"
	"context"
)

type PageFetcher interface {
	// Fetch downloads the configured page and returns its markup.
	Fetch(ctx context.Context) ([]byte, error)
}

type JokeExtractor interface {
	// Extract returns the joke texts found in the markup in document order.
	Extract(page []byte) ([]string, error)
}

type CorpusStore interface {
	// Load reads the persisted corpus. On failure it still returns an empty, usable corpus.
	Load() (*domain.Corpus, error)
	// Save numbers the texts from 1 and replaces the persisted corpus with them.
	Save(texts []string) (int, error)
}
