package search

// Depth selects how rich a search request is. Advanced depth keeps the same
// API call but pulls additional page metadata into the results.
type Depth string

const (
	DepthBasic    Depth = "basic"
	DepthAdvanced Depth = "advanced"
)

// TimeRange restricts results to a trailing window.
type TimeRange string

const (
	TimeRangeNone  TimeRange = ""
	TimeRangeDay   TimeRange = "day"
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// Request represents a normalized web search request.
type Request struct {
	Query             string
	SearchDepth       Depth
	TimeRange         TimeRange
	MaxResults        int
	IncludeDomains    []string
	ExcludeDomains    []string
	IncludeRawContent bool
}

// Result is a normalized search result.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"display_link,omitempty"`
	FileFormat  string `json:"file_format,omitempty"`
	Published   string `json:"published,omitempty"`
	RawContent  string `json:"raw_content,omitempty"`
}

// Response is a normalized search response.
type Response struct {
	Query     string   `json:"query"`
	Count     int      `json:"count"`
	TookMs    int64    `json:"took_ms"`
	Results   []Result `json:"results"`
	NoResults bool     `json:"no_results,omitempty"`
}
