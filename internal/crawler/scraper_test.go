package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cveharvest/internal/config"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		TimeoutSec: 5,
		MaxBodyKb:  64,
		RatePerSec: 1000, // effectively unthrottled for tests
	}
}

func testSourceConfig() config.SourceConfig {
	return config.SourceConfig{
		Headers: config.HeaderProfile{
			UserAgent:      "harvester-test/1.0",
			Referer:        "https://referer.example.com/",
			AcceptLanguage: "en-US,en;q=0.9",
		},
	}
}

func TestScraper_Fetch_AppliesHeaderProfile(t *testing.T) {
	var gotUA, gotReferer, gotLang string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		gotLang = r.Header.Get("Accept-Language")

		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	scraper := NewScraper(testFetchConfig(), testSourceConfig())

	body, err := scraper.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if string(body) != "ok" {
		t.Errorf("Expected body 'ok', got %q", body)
	}

	if gotUA != "harvester-test/1.0" {
		t.Errorf("Expected configured user agent, got %q", gotUA)
	}

	if gotReferer != "https://referer.example.com/" {
		t.Errorf("Expected configured referer, got %q", gotReferer)
	}

	if gotLang != "en-US,en;q=0.9" {
		t.Errorf("Expected configured accept-language, got %q", gotLang)
	}
}

func TestScraper_Fetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	scraper := NewScraper(testFetchConfig(), testSourceConfig())

	_, err := scraper.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for 403 response, got nil")
	}

	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Errorf("Expected ErrUnexpectedStatusCode, got %v", err)
	}
}

func TestScraper_Fetch_TransportFailure(t *testing.T) {
	scraper := NewScraper(testFetchConfig(), testSourceConfig())

	// Nothing listens here.
	_, err := scraper.Fetch(context.Background(), "http://127.0.0.1:1/none")
	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}
}

func TestScraper_Fetch_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("x", 128*1024)))
	}))
	defer srv.Close()

	fetch := testFetchConfig()
	fetch.MaxBodyKb = 1

	scraper := NewScraper(fetch, testSourceConfig())

	body, err := scraper.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(body) != 1024 {
		t.Errorf("Expected body truncated to 1024 bytes, got %d", len(body))
	}
}

func TestScraper_Fetch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scraper := NewScraper(testFetchConfig(), testSourceConfig())

	if _, err := scraper.Fetch(ctx, srv.URL); err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
