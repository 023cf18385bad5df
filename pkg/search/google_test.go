package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

func testService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := &Config{
		APIKey:   "test-key",
		EngineID: "test-cx",
		BaseURL:  server.URL,
	}
	return NewService(cfg, nil, zerolog.Nop()), server
}

func TestBuildQueryDomainFilters(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "plain",
			req:  Request{Query: "renewable energy"},
			want: "renewable energy",
		},
		{
			name: "single include",
			req:  Request{Query: "go", IncludeDomains: []string{"go.dev"}},
			want: "go site:go.dev",
		},
		{
			name: "multiple includes or-grouped",
			req:  Request{Query: "go", IncludeDomains: []string{"go.dev", "pkg.go.dev"}},
			want: "go (site:go.dev OR site:pkg.go.dev)",
		},
		{
			name: "excludes",
			req:  Request{Query: "go", ExcludeDomains: []string{"pinterest.com", "quora.com"}},
			want: "go -site:pinterest.com -site:quora.com",
		},
	}
	for _, tc := range cases {
		if got := buildQuery(tc.req); got != tc.want {
			t.Fatalf("%s: buildQuery = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCallGoogleRequestParameters(t *testing.T) {
	var gotQuery url.Values
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))

	req, err := normalizeRequest(Request{Query: "renewable energy", TimeRange: TimeRangeMonth, MaxResults: 7})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, err := svc.callGoogle(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("key") != "test-key" || gotQuery.Get("cx") != "test-cx" {
		t.Fatalf("credentials not sent: %v", gotQuery)
	}
	if gotQuery.Get("q") != "renewable energy" {
		t.Fatalf("unexpected q: %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("num") != "7" {
		t.Fatalf("unexpected num: %q", gotQuery.Get("num"))
	}
	if gotQuery.Get("dateRestrict") != "m1" {
		t.Fatalf("expected dateRestrict=m1, got %q", gotQuery.Get("dateRestrict"))
	}
}

func TestCallGoogleMapsItems(t *testing.T) {
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
			{"title":" Solar power ","link":"https://example.com/solar","snippet":" Clean energy. ","displayLink":"example.com"},
			{"title":"Report","link":"https://example.org/report.pdf","snippet":"Annual report","fileFormat":"PDF/Adobe Acrobat"}
		]}`))
	}))

	req, _ := normalizeRequest(Request{Query: "solar"})
	results, err := svc.callGoogle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Solar power" || results[0].Snippet != "Clean energy." {
		t.Fatalf("whitespace not trimmed: %+v", results[0])
	}
	if results[0].DisplayLink != "example.com" {
		t.Fatalf("display link not mapped: %+v", results[0])
	}
	if results[1].FileFormat != "PDF/Adobe Acrobat" {
		t.Fatalf("file format not mapped: %+v", results[1])
	}
}

func TestCallGoogleAdvancedDepthMetadata(t *testing.T) {
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{
			"title":"Post","link":"https://example.com/post",
			"pagemap":{"metatags":[{"og:description":"From metatags","article:published_time":"2026-07-01T10:00:00Z"}]}
		}]}`))
	}))

	req, _ := normalizeRequest(Request{Query: "post", SearchDepth: DepthAdvanced})
	results, err := svc.callGoogle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Snippet != "From metatags" {
		t.Fatalf("expected og:description snippet fallback, got %q", results[0].Snippet)
	}
	if results[0].Published != "2026-07-01T10:00:00Z" {
		t.Fatalf("expected published timestamp, got %q", results[0].Published)
	}

	// Basic depth must ignore pagemap metadata.
	req, _ = normalizeRequest(Request{Query: "post"})
	results, err = svc.callGoogle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Published != "" || results[0].Snippet != "" {
		t.Fatalf("basic depth leaked metadata: %+v", results[0])
	}
}

func TestCallGoogleUpstreamErrorParsesBody(t *testing.T) {
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	}))

	req, _ := normalizeRequest(Request{Query: "anything"})
	_, err := svc.callGoogle(context.Background(), req)
	if !weberrors.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %T: %v", err, err)
	}
	var upstream *weberrors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", upstream.StatusCode)
	}
	if upstream.Message != "Quota exceeded" {
		t.Fatalf("expected parsed API message, got %q", upstream.Message)
	}
}

func TestCallGoogleExcludedDomainsFiltered(t *testing.T) {
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Keep","link":"https://example.com/a"},
			{"title":"Drop","link":"https://spam.example.net/b"},
			{"title":"Drop subdomain","link":"https://www.spam.example.net/c"}
		]}`))
	}))

	req, _ := normalizeRequest(Request{Query: "q", ExcludeDomains: []string{"spam.example.net"}})
	results, err := svc.callGoogle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].URL != "https://example.com/a" {
		t.Fatalf("excluded domain leaked into results: %+v", results)
	}
}
