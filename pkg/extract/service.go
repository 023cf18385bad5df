// Package extract implements the URL content extraction operation: fetch a
// page, parse its HTML, and return clean text plus optional image
// references. Each URL in a request is processed independently.
package extract

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

// Service runs extraction requests. Stateless; every call is independent.
type Service struct {
	cfg *Config
	log zerolog.Logger
}

// NewService creates an extraction service.
func NewService(cfg *Config, log zerolog.Logger) *Service {
	return &Service{
		cfg: cfg.WithDefaults(),
		log: log.With().Str("component", "extract").Logger(),
	}
}

// Extract processes every URL in req with bounded concurrency. Pages come
// back in request order; a failing URL is marked failed on its page and
// never aborts the others.
func (s *Service) Extract(ctx context.Context, req Request) (*Response, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, len(req.URLs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Concurrency)
	for i, rawURL := range req.URLs {
		group.Go(func() error {
			pages[i] = s.page(groupCtx, rawURL, req.ExtractDepth, req.IncludeImages)
			return nil
		})
	}
	// Workers never return errors; failures live on the pages.
	_ = group.Wait()

	resp := &Response{Pages: pages}
	for _, page := range pages {
		if page.Status == StatusSuccess {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}

// Text fetches a single URL and returns its extracted text. It backs the
// search operation's raw content enrichment.
func (s *Service) Text(ctx context.Context, rawURL string) (string, error) {
	page := s.page(ctx, rawURL, DepthBasic, false)
	if page.Status != StatusSuccess {
		return "", weberrors.NewFetch(rawURL, page.Error, nil)
	}
	return page.Text, nil
}

// page fetches and extracts one URL. It never returns an error; failures
// are recorded on the returned Page.
func (s *Service) page(ctx context.Context, rawURL string, depth Depth, includeImages bool) Page {
	start := time.Now()
	page := Page{URL: rawURL, Status: StatusFailed}

	fail := func(err error) Page {
		page.Error = err.Error()
		page.TookMs = time.Since(start).Milliseconds()
		s.log.Debug().Err(err).Str("url", rawURL).Msg("Extraction failed")
		return page
	}

	if err := s.checkURL(rawURL); err != nil {
		return fail(err)
	}

	fetched, err := s.fetch(ctx, rawURL)
	if err != nil {
		return fail(err)
	}

	page.FinalURL = fetched.FinalURL
	page.ContentType = fetched.ContentType

	switch {
	case strings.Contains(fetched.ContentType, "text/html"),
		strings.Contains(fetched.ContentType, "application/xhtml"):
		parsed, err := parseHTML(fetched.Body)
		if err != nil {
			return fail(weberrors.NewFetch(rawURL, "unparsable content", err))
		}
		page.Title = parsed.title()
		page.Text = truncate(parsed.text(depth), s.cfg.MaxChars)
		if includeImages {
			base, _ := url.Parse(fetched.FinalURL)
			page.Images = parsed.images(base, MaxImagesPerPage)
		}
	case strings.Contains(fetched.ContentType, "application/json"):
		page.Text = truncate(prettyJSON(fetched.Body), s.cfg.MaxChars)
	case strings.HasPrefix(fetched.ContentType, "text/"):
		page.Text = truncate(string(fetched.Body), s.cfg.MaxChars)
	default:
		return fail(weberrors.NewFetch(rawURL, "unsupported content type "+fetched.ContentType, nil))
	}

	page.Status = StatusSuccess
	page.TookMs = time.Since(start).Milliseconds()
	return page
}

func prettyJSON(body []byte) string {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(pretty)
}

func normalizeRequest(req Request) (Request, error) {
	urls := make([]string, 0, len(req.URLs))
	for _, rawURL := range req.URLs {
		if rawURL = strings.TrimSpace(rawURL); rawURL != "" {
			urls = append(urls, rawURL)
		}
	}
	req.URLs = urls
	if len(req.URLs) == 0 {
		return req, weberrors.NewValidation("urls", "must contain at least one url")
	}

	switch req.ExtractDepth {
	case "":
		req.ExtractDepth = DepthBasic
	case DepthBasic, DepthAdvanced:
	default:
		return req, weberrors.NewValidation("extract_depth", "must be %q or %q, got %q", DepthBasic, DepthAdvanced, req.ExtractDepth)
	}
	return req, nil
}
