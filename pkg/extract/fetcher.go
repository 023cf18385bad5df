package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

// fetchResult is the raw outcome of a page fetch before extraction.
type fetchResult struct {
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        []byte
}

var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
}

// checkURL rejects URLs the fetcher must not touch: non-HTTP schemes,
// localhost, and private or link-local addresses.
func (s *Service) checkURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return weberrors.NewFetch(rawURL, "invalid url", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return weberrors.NewFetch(rawURL, fmt.Sprintf("unsupported scheme %q", parsed.Scheme), nil)
	}
	if parsed.Host == "" {
		return weberrors.NewFetch(rawURL, "missing host", nil)
	}
	if s.cfg.AllowPrivate {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" {
		return weberrors.NewFetch(rawURL, "host not allowed", nil)
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		for _, prefix := range blockedPrefixes {
			if prefix.Contains(addr.Unmap()) {
				return weberrors.NewFetch(rawURL, "address not allowed", nil)
			}
		}
	}
	return nil
}

// fetch performs a single GET with browser-like headers, a per-request
// timeout, a redirect cap, and a response size cap.
func (s *Service) fetch(ctx context.Context, rawURL string) (*fetchResult, error) {
	client := &http.Client{
		Timeout: time.Duration(s.cfg.TimeoutSecs) * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= s.cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", s.cfg.MaxRedirects)
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, weberrors.NewFetch(rawURL, "building request failed", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, weberrors.NewFetch(rawURL, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, weberrors.NewFetch(rawURL, fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, weberrors.NewFetch(rawURL, "reading body failed", err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &fetchResult{
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: normalizeContentType(resp.Header.Get("Content-Type")),
		Body:        body,
	}, nil
}

func normalizeContentType(value string) string {
	if value == "" {
		return "application/octet-stream"
	}
	parts := strings.Split(value, ";")
	return strings.TrimSpace(parts[0])
}
