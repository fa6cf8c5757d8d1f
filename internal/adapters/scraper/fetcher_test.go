package scraper

import (
	"anekbot/internal/core/domain"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		location string
		body     string
		wantErr  bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   "<html>ok</html>",
		},
		{
			name:   "non 200 success",
			status: http.StatusNonAuthoritativeInfo,
			body:   "<html>ok</html>",
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    "not found",
			wantErr: true,
		},
		{
			name:     "redirect is not followed",
			status:   http.StatusMovedPermanently,
			location: "/moved",
			body:     "moved",
			wantErr:  true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotUA string
			requests := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				gotUA = r.Header.Get("User-Agent")
				if tc.location != "" {
					w.Header().Set("Location", tc.location)
				}
				w.WriteHeader(tc.status)
				_, err := w.Write([]byte(tc.body))
				assert.NoError(t, err)
			}))
			defer srv.Close()

			res, err := NewFetcher(srv.URL, time.Second).Fetch(t.Context())
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrNetwork)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, []byte(tc.body), res)
			}
			assert.Equal(t, DefaultUserAgent, gotUA)
			assert.Equal(t, 1, requests)
		})
	}
}

func TestFetcher_FetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write(bytes.Repeat([]byte("a"), MaxPageSize+1))
		assert.NoError(t, err)
	}))
	defer srv.Close()

	res, err := NewFetcher(srv.URL, 5*time.Second).Fetch(t.Context())
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Nil(t, res)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestFetcher_FetchCustomClient(t *testing.T) {
	var gotURL, gotUA string
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotUA = r.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html>stub</html>")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}

	res, err := NewFetcher("http://jokes.example/best", time.Second, WithHTTPClient(client)).Fetch(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "<html>stub</html>", string(res))
	assert.Equal(t, "http://jokes.example/best", gotURL)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetcher_FetchCustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, time.Second, WithUserAgent("anekbot-test")).Fetch(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "anekbot-test", gotUA)
}

func TestFetcher_FetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, 20*time.Millisecond).Fetch(t.Context())
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFetcher_FetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(url, time.Second).Fetch(t.Context())
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFetcher_JitterCancelled(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := NewFetcher(srv.URL, time.Second, WithJitter(time.Minute, 2*time.Minute)).Fetch(ctx)
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
}

func TestFetcher_Jitter(t *testing.T) {
	tests := []struct {
		name    string
		lo      time.Duration
		hi      time.Duration
		wantMin time.Duration
		wantMax time.Duration
	}{
		{name: "disabled", lo: 0, hi: 0, wantMin: 0, wantMax: 0},
		{name: "fixed when max not above min", lo: time.Second, hi: time.Second, wantMin: time.Second, wantMax: time.Second},
		{name: "range", lo: 500 * time.Millisecond, hi: 1500 * time.Millisecond,
			wantMin: 500 * time.Millisecond, wantMax: 1500*time.Millisecond - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFetcher("http://localhost", time.Second, WithJitter(tc.lo, tc.hi))
			for range 100 {
				d := f.jitter()
				assert.GreaterOrEqual(t, d, tc.wantMin)
				assert.LessOrEqual(t, d, tc.wantMax)
			}
		})
	}
}
