// Package search implements the web search operation against the Google
// Programmable Search Engine API.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

// ContentFetcher supplies extracted page text for raw content enrichment.
// The extraction package satisfies it.
type ContentFetcher interface {
	Text(ctx context.Context, rawURL string) (string, error)
}

// Service runs search requests. It holds no per-request state; every call
// is independent.
type Service struct {
	cfg *Config
	raw ContentFetcher
	log zerolog.Logger
}

// NewService creates a search service. raw may be nil, in which case
// include_raw_content requests return results without raw content.
func NewService(cfg *Config, raw ContentFetcher, log zerolog.Logger) *Service {
	return &Service{
		cfg: cfg.WithDefaults(),
		raw: raw,
		log: log.With().Str("component", "search").Logger(),
	}
}

// Search validates and normalizes req, queries the search API, and returns
// normalized results. Validation and configuration failures happen before
// any network I/O.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.cfg.validateCredentials(); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := s.callGoogle(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.IncludeRawContent {
		s.attachRawContent(ctx, results)
	}

	s.log.Debug().
		Str("query", req.Query).
		Int("results", len(results)).
		Dur("took", time.Since(start)).
		Msg("Search completed")

	return &Response{
		Query:     req.Query,
		Count:     len(results),
		TookMs:    time.Since(start).Milliseconds(),
		Results:   results,
		NoResults: len(results) == 0,
	}, nil
}

// attachRawContent fetches and extracts the first few result pages. Fetch
// failures leave RawContent empty; they never fail the search.
func (s *Service) attachRawContent(ctx context.Context, results []Result) {
	if s.raw == nil {
		s.log.Warn().Msg("Raw content requested but no content fetcher is wired")
		return
	}
	limit := min(RawContentResults, len(results))
	for i := 0; i < limit; i++ {
		text, err := s.raw.Text(ctx, results[i].URL)
		if err != nil {
			s.log.Debug().Err(err).Str("url", results[i].URL).Msg("Raw content fetch failed")
			continue
		}
		results[i].RawContent = text
	}
}

func normalizeRequest(req Request) (Request, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return req, weberrors.NewValidation("query", "must not be empty")
	}

	switch req.SearchDepth {
	case "":
		req.SearchDepth = DepthBasic
	case DepthBasic, DepthAdvanced:
	default:
		return req, weberrors.NewValidation("search_depth", "must be %q or %q, got %q", DepthBasic, DepthAdvanced, req.SearchDepth)
	}

	switch req.TimeRange {
	case TimeRangeNone, TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeYear:
	default:
		return req, weberrors.NewValidation("time_range", "must be one of day, week, month, year, got %q", req.TimeRange)
	}

	if req.MaxResults == 0 {
		req.MaxResults = DefaultMaxResults
	}
	if req.MaxResults < MinMaxResults {
		req.MaxResults = MinMaxResults
	}
	if req.MaxResults > MaxMaxResults {
		req.MaxResults = MaxMaxResults
	}
	return req, nil
}
