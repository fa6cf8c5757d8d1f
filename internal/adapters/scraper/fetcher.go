package scraper

import (
	"anekbot/internal/core/domain"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/91.0.4472.124 Safari/537.36"

// MaxPageSize caps how much of a response body is read.
const MaxPageSize = 8 << 20

// Fetcher downloads one page with a browser-like User-Agent. Before the
// request it waits a random delay in [JitterMin, JitterMax).
type Fetcher struct {
	url       string
	userAgent string
	jitterMin time.Duration
	jitterMax time.Duration
	client    *http.Client
}

type FetcherOption func(*Fetcher)

func WithUserAgent(userAgent string) FetcherOption {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithJitter sets the pre-request delay range. A zero max disables the delay.
func WithJitter(minDelay, maxDelay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.jitterMin = minDelay
		f.jitterMax = maxDelay
	}
}

// WithHTTPClient replaces the default client. The timeout passed to NewFetcher
// and the redirect policy are then up to the caller.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

func NewFetcher(url string, timeout time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:       url,
		userAgent: DefaultUserAgent,
		client: &http.Client{
			Timeout: timeout,
			// one request only: a redirect is reported by its 3xx status
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch returns the page body. Transport failures and non-2xx responses are
// reported as ErrNetwork; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	l := log.With().Str("url", f.url).Logger()

	if err := f.wait(ctx); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrNetwork, err)
		l.Error().Err(err).Msg("fetch cancelled")
		return nil, err
	}

	l.Info().Msg("fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		err = fmt.Errorf("%w: error creating request %w", domain.ErrNetwork, err)
		l.Error().Err(err).Send()
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)

	res, err := f.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: error executing request %w", domain.ErrNetwork, err)
		l.Error().Err(err).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("%w: unexpected status code %d", domain.ErrNetwork, res.StatusCode)
		l.Error().Err(err).Int("status", res.StatusCode).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, MaxPageSize+1))
	if err != nil {
		err = fmt.Errorf("%w: error reading response %w", domain.ErrNetwork, err)
		l.Error().Err(err).Send()
		return nil, err
	}

	if len(buf) > MaxPageSize {
		err = fmt.Errorf("%w: response larger than %d bytes", domain.ErrNetwork, MaxPageSize)
		l.Error().Err(err).Send()
		return nil, err
	}

	l.Info().Int("bytes", len(buf)).Msg("page fetched")

	return buf, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	delay := f.jitter()
	if delay <= 0 {
		return ctx.Err()
	}

	log.Debug().Dur("delay", delay).Msg("waiting before request")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) jitter() time.Duration {
	if f.jitterMax <= 0 {
		return 0
	}
	if f.jitterMax <= f.jitterMin {
		return f.jitterMin
	}
	return f.jitterMin + rand.N(f.jitterMax-f.jitterMin)
}
