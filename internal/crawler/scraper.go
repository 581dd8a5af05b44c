package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"cveharvest/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with a non-2xx status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher retrieves one raw page. Implementations never retry
// internally; stop/continue decisions belong to the worker.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Scraper is the only component that talks to the network. It applies
// a fixed outbound identity profile to every request and shares one
// rate limiter across all units, covering listing and enrichment
// fetches alike.
type Scraper struct {
	client  *http.Client
	headers config.HeaderProfile
	limiter *rate.Limiter
	maxBody int64
}

// NewScraper creates a scraper from the fetch and source configuration.
func NewScraper(fetch config.FetchConfig, source config.SourceConfig) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: fetch.GetTimeout(),
		},
		headers: source.Headers,
		limiter: rate.NewLimiter(rate.Limit(fetch.RatePerSec), 1),
		maxBody: int64(fetch.MaxBodyKb) * 1024,
	}
}

// Fetch retrieves the given URL and returns its body. A non-2xx status
// or transport failure is returned as an error; the caller decides
// whether that is unit-terminal or degradable.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.headers.UserAgent != "" {
		req.Header.Set("User-Agent", s.headers.UserAgent)
	}

	if s.headers.Referer != "" {
		req.Header.Set("Referer", s.headers.Referer)
	}

	if s.headers.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", s.headers.AcceptLanguage)
	}

	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed after %.2fs: %w", time.Since(start).Seconds(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatusCode, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
