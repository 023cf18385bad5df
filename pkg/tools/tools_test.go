package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/KSDeshappriya/findit-mcp/pkg/extract"
	"github.com/KSDeshappriya/findit-mcp/pkg/search"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("result has no content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func decodeError(t *testing.T, result *mcp.CallToolResult) map[string]string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("error payload is not json: %v", err)
	}
	return payload
}

func newTestHandlers(t *testing.T, searchURL string) *Handlers {
	t.Helper()
	extractor := extract.NewService(&extract.Config{AllowPrivate: true}, zerolog.Nop())
	searcher := search.NewService(&search.Config{
		APIKey:   "k",
		EngineID: "cx",
		BaseURL:  searchURL,
	}, extractor, zerolog.Nop())
	return NewHandlers(searcher, extractor, zerolog.Nop())
}

func TestWebSearchEmptyQueryIsToolError(t *testing.T) {
	h := newTestHandlers(t, "http://unused.invalid")

	result, resp, err := h.WebSearch(context.Background(), nil, SearchInput{Query: ""})
	if err != nil {
		t.Fatalf("tool errors must not propagate as handler errors: %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response on error")
	}
	if !result.IsError {
		t.Fatalf("expected IsError result")
	}
	payload := decodeError(t, result)
	if payload["kind"] != "validation_error" {
		t.Fatalf("expected validation_error kind, got %q", payload["kind"])
	}
}

func TestWebSearchSuccessReturnsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"title":"Go","link":"https://go.dev","snippet":"The Go programming language"}]}`))
	}))
	defer server.Close()
	h := newTestHandlers(t, server.URL)

	result, resp, err := h.WebSearch(context.Background(), nil, SearchInput{Query: "golang", MaxResults: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if resp.Count != 1 || resp.Results[0].URL != "https://go.dev" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var decoded search.Response
	if err := json.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatalf("content is not the json response: %v", err)
	}
	if decoded.Results[0].Title != "Go" {
		t.Fatalf("unexpected decoded content: %+v", decoded)
	}
}

func TestWebSearchUpstreamFailureIsToolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key invalid"}}`))
	}))
	defer server.Close()
	h := newTestHandlers(t, server.URL)

	result, _, err := h.WebSearch(context.Background(), nil, SearchInput{Query: "golang"})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	payload := decodeError(t, result)
	if payload["kind"] != "upstream_error" {
		t.Fatalf("expected upstream_error kind, got %q", payload["kind"])
	}
}

func TestWebExtractEmptyURLsIsToolError(t *testing.T) {
	h := newTestHandlers(t, "http://unused.invalid")

	result, _, err := h.WebExtract(context.Background(), nil, ExtractInput{})
	if err != nil {
		t.Fatalf("tool errors must not propagate as handler errors: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected IsError result")
	}
	if payload := decodeError(t, result); payload["kind"] != "validation_error" {
		t.Fatalf("expected validation_error kind, got %q", payload["kind"])
	}
}

func TestWebExtractMixedResultsSucceed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>page body</p></body></html>`))
	}))
	defer server.Close()
	h := newTestHandlers(t, "http://unused.invalid")

	result, resp, err := h.WebExtract(context.Background(), nil, ExtractInput{
		URLs: []string{server.URL, "not-a-valid-url"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("per-url failures must not fail the call: %s", resultText(t, result))
	}
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}
