// Package tools exposes the search and extraction operations as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/KSDeshappriya/findit-mcp/pkg/extract"
	"github.com/KSDeshappriya/findit-mcp/pkg/search"
	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

const (
	WebSearchName        = "web_search"
	WebSearchDescription = "Search the web. Returns ranked results with title, url, and snippet; optionally includes extracted page text for the top results."

	WebExtractName        = "web_extract"
	WebExtractDescription = "Fetch one or more URLs and extract readable text (and optionally image references) from their HTML. Each URL is reported independently as success or failed."
)

// SearchInput is the web_search tool's input.
type SearchInput struct {
	Query             string   `json:"query" jsonschema:"description=The search query"`
	SearchDepth       string   `json:"search_depth,omitempty" jsonschema:"description=Search richness: basic or advanced (default basic)"`
	TimeRange         string   `json:"time_range,omitempty" jsonschema:"description=Restrict results to the last day/week/month/year"`
	MaxResults        int      `json:"max_results,omitempty" jsonschema:"description=Number of results (1-10, default 5)"`
	IncludeDomains    []string `json:"include_domains,omitempty" jsonschema:"description=Only return results from these domains"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty" jsonschema:"description=Never return results from these domains"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty" jsonschema:"description=Also extract page text for the top 3 results"`
}

// ExtractInput is the web_extract tool's input.
type ExtractInput struct {
	URLs          []string `json:"urls" jsonschema:"description=URLs to fetch and extract"`
	ExtractDepth  string   `json:"extract_depth,omitempty" jsonschema:"description=Extraction richness: basic or advanced (default basic)"`
	IncludeImages bool     `json:"include_images,omitempty" jsonschema:"description=Collect up to 10 image references per page"`
}

// Handlers bundles the services behind the tool surface.
type Handlers struct {
	searcher  *search.Service
	extractor *extract.Service
	log       zerolog.Logger
}

// NewHandlers creates the tool handlers.
func NewHandlers(searcher *search.Service, extractor *extract.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		searcher:  searcher,
		extractor: extractor,
		log:       log.With().Str("component", "tools").Logger(),
	}
}

// Register adds both tools to the MCP server.
func (h *Handlers) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        WebSearchName,
		Description: WebSearchDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Web Search", ReadOnlyHint: true},
	}, h.WebSearch)
	mcp.AddTool(server, &mcp.Tool{
		Name:        WebExtractName,
		Description: WebExtractDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Web Extract", ReadOnlyHint: true},
	}, h.WebExtract)
}

// WebSearch handles web_search tool calls.
func (h *Handlers) WebSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, *search.Response, error) {
	log := h.invocationLog(WebSearchName)
	start := time.Now()

	resp, err := h.searcher.Search(ctx, search.Request{
		Query:             input.Query,
		SearchDepth:       search.Depth(input.SearchDepth),
		TimeRange:         search.TimeRange(input.TimeRange),
		MaxResults:        input.MaxResults,
		IncludeDomains:    input.IncludeDomains,
		ExcludeDomains:    input.ExcludeDomains,
		IncludeRawContent: input.IncludeRawContent,
	})
	if err != nil {
		log.Warn().Err(err).Str("kind", weberrors.Kind(err)).Msg("Search call failed")
		return errorResult(err), nil, nil
	}

	log.Info().Int("results", resp.Count).Dur("took", time.Since(start)).Msg("Search call completed")
	return jsonResult(resp), resp, nil
}

// WebExtract handles web_extract tool calls.
func (h *Handlers) WebExtract(ctx context.Context, req *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, *extract.Response, error) {
	log := h.invocationLog(WebExtractName)
	start := time.Now()

	resp, err := h.extractor.Extract(ctx, extract.Request{
		URLs:          input.URLs,
		ExtractDepth:  extract.Depth(input.ExtractDepth),
		IncludeImages: input.IncludeImages,
	})
	if err != nil {
		log.Warn().Err(err).Str("kind", weberrors.Kind(err)).Msg("Extract call failed")
		return errorResult(err), nil, nil
	}

	log.Info().
		Int("succeeded", resp.Succeeded).
		Int("failed", resp.Failed).
		Dur("took", time.Since(start)).
		Msg("Extract call completed")
	return jsonResult(resp), resp, nil
}

func (h *Handlers) invocationLog(tool string) zerolog.Logger {
	return h.log.With().Str("tool", tool).Str("invocation", xid.New().String()).Logger()
}

// jsonResult renders payload as a JSON text block.
func jsonResult(payload any) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// errorResult renders a structured tool error. Taxonomy errors keep their
// category so the calling agent can tell bad input from upstream failures.
func errorResult(err error) *mcp.CallToolResult {
	payload, marshalErr := json.Marshal(map[string]string{
		"kind":  weberrors.Kind(err),
		"error": err.Error(),
	})
	if marshalErr != nil {
		payload = []byte(err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		IsError: true,
	}
}
