package scraper

import (
	"anekbot/internal/core/domain"
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const DefaultBlockClass = "ds-article-content__block_text"

// Extractor pulls jokes out of div blocks carrying a known class. Every
// non-empty paragraph inside a block becomes one line of that block's joke.
type Extractor struct {
	blockClass string
}

func NewExtractor(blockClass string) *Extractor {
	if blockClass == "" {
		blockClass = DefaultBlockClass
	}
	return &Extractor{blockClass: blockClass}
}

// Extract returns the jokes in document order. When nothing matches it
// returns ErrSchemaDrift, which usually means the site layout changed.
func (e *Extractor) Extract(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("error parsing page: %w", err)
	}

	blocks := doc.Find("div." + e.blockClass)

	jokes := make([]string, 0, blocks.Length())
	blocks.Each(func(_ int, block *goquery.Selection) {
		var lines []string
		block.Find("p").Each(func(_ int, p *goquery.Selection) {
			if line := strings.TrimSpace(p.Text()); line != "" {
				lines = append(lines, line)
			}
		})

		if len(lines) > 0 {
			jokes = append(jokes, strings.Join(lines, "\n"))
		}
	})

	if len(jokes) == 0 {
		log.Warn().Int("blocks", blocks.Length()).Str("class", e.blockClass).
			Msg("no jokes found, the site structure may have changed")
		return nil, domain.ErrSchemaDrift
	}

	log.Info().Int("blocks", blocks.Length()).Int("jokes", len(jokes)).Msg("parsed jokes")

	return jokes, nil
}
