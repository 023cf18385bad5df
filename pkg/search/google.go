package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/KSDeshappriya/findit-mcp/pkg/httputil"
	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

// dateRestrict values for the Google Programmable Search API.
var dateRestrictByRange = map[TimeRange]string{
	TimeRangeDay:   "d1",
	TimeRangeWeek:  "w1",
	TimeRangeMonth: "m1",
	TimeRangeYear:  "y1",
}

type googleItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	FileFormat  string `json:"fileFormat"`
	Mime        string `json:"mime"`
	Pagemap     struct {
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap"`
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

// googleErrorBody matches the error envelope the API returns on failure.
type googleErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// buildQuery appends domain restrictions to the caller's query using search
// operator syntax. The siteSearch parameter only takes a single domain, so
// multiple include domains are OR-grouped as site: terms instead.
func buildQuery(req Request) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(req.Query))
	if len(req.IncludeDomains) > 0 {
		terms := make([]string, 0, len(req.IncludeDomains))
		for _, domain := range req.IncludeDomains {
			if domain = strings.TrimSpace(domain); domain != "" {
				terms = append(terms, "site:"+domain)
			}
		}
		if len(terms) == 1 {
			sb.WriteString(" " + terms[0])
		} else if len(terms) > 1 {
			sb.WriteString(" (" + strings.Join(terms, " OR ") + ")")
		}
	}
	for _, domain := range req.ExcludeDomains {
		if domain = strings.TrimSpace(domain); domain != "" {
			sb.WriteString(" -site:" + domain)
		}
	}
	return sb.String()
}

// searchURL constructs the full request URL for the API.
func (s *Service) searchURL(req Request) (string, error) {
	endpoint, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	values := endpoint.Query()
	values.Set("key", s.cfg.APIKey)
	values.Set("cx", s.cfg.EngineID)
	values.Set("q", buildQuery(req))
	values.Set("num", fmt.Sprintf("%d", req.MaxResults))
	if restrict, ok := dateRestrictByRange[req.TimeRange]; ok {
		values.Set("dateRestrict", restrict)
	}
	endpoint.RawQuery = values.Encode()
	return endpoint.String(), nil
}

// callGoogle performs the API request and maps the response.
func (s *Service) callGoogle(ctx context.Context, req Request) ([]Result, error) {
	fullURL, err := s.searchURL(req)
	if err != nil {
		return nil, err
	}

	data, _, err := httputil.GetJSON(ctx, fullURL, nil, s.cfg.TimeoutSecs)
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			return nil, &weberrors.UpstreamError{
				StatusCode: statusErr.StatusCode,
				Message:    upstreamMessage(statusErr),
				Err:        err,
			}
		}
		return nil, &weberrors.UpstreamError{Message: err.Error(), Err: err}
	}

	var parsed googleResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &weberrors.UpstreamError{Message: fmt.Sprintf("malformed response: %v", err), Err: err}
	}

	excluded := newDomainSet(req.ExcludeDomains)
	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if excluded.matchesURL(item.Link) {
			continue
		}
		results = append(results, mapItem(item, req.SearchDepth))
		if len(results) >= req.MaxResults {
			break
		}
	}
	return results, nil
}

func mapItem(item googleItem, depth Depth) Result {
	result := Result{
		Title:       strings.TrimSpace(item.Title),
		URL:         item.Link,
		Snippet:     strings.TrimSpace(item.Snippet),
		DisplayLink: item.DisplayLink,
		FileFormat:  firstNonEmpty(item.FileFormat, item.Mime),
	}
	if depth == DepthAdvanced && len(item.Pagemap.Metatags) > 0 {
		tags := item.Pagemap.Metatags[0]
		if result.Snippet == "" {
			result.Snippet = strings.TrimSpace(tags["og:description"])
		}
		result.Published = firstNonEmpty(
			tags["article:published_time"],
			tags["og:article:published_time"],
			tags["article:modified_time"],
		)
	}
	return result
}

// upstreamMessage pulls the human-readable message out of the API's JSON
// error envelope, falling back to the raw body.
func upstreamMessage(statusErr *httputil.StatusError) string {
	var body googleErrorBody
	if err := json.Unmarshal(statusErr.Body, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	msg := strings.TrimSpace(string(statusErr.Body))
	if msg == "" {
		return "no error detail"
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// domainSet matches hostnames against a set of domains, including
// subdomains of each entry.
type domainSet map[string]struct{}

func newDomainSet(domains []string) domainSet {
	if len(domains) == 0 {
		return nil
	}
	set := make(domainSet, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			set[domain] = struct{}{}
		}
	}
	return set
}

func (s domainSet) matchesURL(rawURL string) bool {
	if len(s) == 0 {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range s {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
