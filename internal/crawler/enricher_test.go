package crawler

import (
	"context"
	"testing"

	"cveharvest/internal/models"
)

func TestEnricher_ResolvesCategory(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://catalog.example.com/cve/CVE-2024-0001/"] = detailHTML("Execute Code")

	enricher := NewEnricher(fetcher, testLogger())

	got := enricher.Enrich(context.Background(), "https://catalog.example.com/cve/CVE-2024-0001/")
	if got != "Execute Code" {
		t.Errorf("Expected category 'Execute Code', got %q", got)
	}
}

func TestEnricher_SentinelCases(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://catalog.example.com/missing-label"] = detailHTML("")
	fetcher.pages["https://catalog.example.com/no-container"] = "<html><body><p>nothing here</p></body></html>"

	enricher := NewEnricher(fetcher, testLogger())

	tests := []struct {
		name string
		url  string
	}{
		{"transport failure", "https://catalog.example.com/unreachable"},
		{"missing label element", "https://catalog.example.com/missing-label"},
		{"missing container", "https://catalog.example.com/no-container"},
		{"empty detail URL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enricher.Enrich(context.Background(), tt.url); got != models.CategoryUnknown {
				t.Errorf("Expected sentinel %q, got %q", models.CategoryUnknown, got)
			}
		})
	}
}

func TestEnricher_TrimsLabelWhitespace(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://catalog.example.com/padded"] = `<html><body><div id="cve_catslabelsnotes_div"><span class="ssc-vuln-cat">
  Overflow
</span></div></body></html>`

	enricher := NewEnricher(fetcher, testLogger())

	if got := enricher.Enrich(context.Background(), "https://catalog.example.com/padded"); got != "Overflow" {
		t.Errorf("Expected trimmed 'Overflow', got %q", got)
	}
}
