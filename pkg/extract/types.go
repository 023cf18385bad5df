package extract

// Depth selects how much structure extraction preserves.
type Depth string

const (
	DepthBasic    Depth = "basic"
	DepthAdvanced Depth = "advanced"
)

// Page status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Request represents a normalized extraction request.
type Request struct {
	URLs          []string
	ExtractDepth  Depth
	IncludeImages bool
}

// Image is a reference to an image found on a page.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Page is the outcome of extracting a single URL. Failures are recorded
// here rather than failing the whole call.
type Page struct {
	URL         string  `json:"url"`
	FinalURL    string  `json:"final_url,omitempty"`
	Status      string  `json:"status"`
	Title       string  `json:"title,omitempty"`
	Text        string  `json:"text,omitempty"`
	Images      []Image `json:"images,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	TookMs      int64   `json:"took_ms"`
	Error       string  `json:"error,omitempty"`
}

// Response holds per-URL pages in request order.
type Response struct {
	Pages     []Page `json:"pages"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}
