package file

import (
	"anekbot/internal/core/domain"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Store keeps the joke corpus as an indented JSON array on disk.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// record mirrors the on-disk layout; pointers tell a missing field from a zero value.
type record struct {
	ID   *int    `json:"id"`
	Text *string `json:"text"`
}

// Load reads the whole corpus file. A missing or malformed file yields an
// empty corpus together with ErrResourceMissing or ErrDecode.
func (s *Store) Load() (*domain.Corpus, error) {
	buf, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %s", domain.ErrResourceMissing, s.path)
		log.Warn().Err(err).Str("path", s.path).Msg("joke file not found, run the scraper first")
		return domain.NewCorpus(nil), err
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrResourceMissing, err)
		log.Error().Err(err).Str("path", s.path).Msg("could not read joke file")
		return domain.NewCorpus(nil), err
	}

	jokes, err := decode(buf)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		log.Error().Err(err).Str("path", s.path).Msg("joke file is corrupted")
		return domain.NewCorpus(nil), err
	}

	log.Info().Int("jokes", len(jokes)).Str("path", s.path).Msg("loaded jokes")

	return domain.NewCorpus(jokes), nil
}

func decode(buf []byte) ([]domain.Joke, error) {
	var records []record
	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, err
	}

	jokes := make([]domain.Joke, 0, len(records))
	for i, r := range records {
		if r.ID == nil || r.Text == nil {
			return nil, fmt.Errorf("record %d is missing id or text", i)
		}
		jokes = append(jokes, domain.Joke{ID: *r.ID, Text: *r.Text})
	}

	return jokes, nil
}

// Save numbers the texts from 1 and replaces the corpus file. An empty list
// is refused so a failed scrape never wipes an existing corpus.
func (s *Store) Save(texts []string) (int, error) {
	if len(texts) == 0 {
		log.Warn().Str("path", s.path).Msg("nothing to save, joke list is empty")
		return 0, domain.ErrEmptyCorpus
	}

	jokes := make([]domain.Joke, len(texts))
	for i, text := range texts {
		jokes[i] = domain.Joke{ID: i + 1, Text: text}
	}

	data, err := encode(jokes)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrPersist, err)
		log.Error().Err(err).Str("path", s.path).Send()
		return 0, err
	}

	log.Info().Int("jokes", len(jokes)).Str("path", s.path).Msg("saving jokes")

	if err := writeFileAtomic(s.path, data); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrPersist, err)
		log.Error().Err(err).Str("path", s.path).Msg("could not write joke file")
		return 0, err
	}

	return len(jokes), nil
}

func encode(jokes []domain.Joke) ([]byte, error) {
	buf := new(bytes.Buffer)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(jokes); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeFileAtomic writes into a uuid-named sibling of path and renames it
// over path, so readers see either the old file or the complete new one.
func writeFileAtomic(path string, data []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id.String()))

	log.Debug().Int("bytes", len(data)).Str("tmp", tmp).Msg("creating temp file")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("error creating temp file %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		removeTempFile(tmp)
		return fmt.Errorf("error writing temp file %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		removeTempFile(tmp)
		return fmt.Errorf("error syncing temp file %w", err)
	}

	if err := f.Close(); err != nil {
		removeTempFile(tmp)
		return fmt.Errorf("error closing temp file %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		removeTempFile(tmp)
		return fmt.Errorf("error replacing %s %w", path, err)
	}

	return nil
}

func removeTempFile(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
