package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

// Elements that never carry main content.
const nonContentSelector = "script, style, noscript, nav, header, footer, aside, form, iframe, svg"

// Block-level elements walked in document order for advanced extraction.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre, td, figcaption"

var whitespaceRe = regexp.MustCompile(`\s+`)

// document bundles the parsed HTML with its OpenGraph metadata.
type document struct {
	doc *goquery.Document
	og  *opengraph.OpenGraph
}

func parseHTML(body []byte) (*document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	og := opengraph.NewOpenGraph()
	// OpenGraph failures are non-fatal; metadata is best effort.
	_ = og.ProcessHTML(bytes.NewReader(body))
	return &document{doc: doc, og: og}, nil
}

// title prefers OpenGraph metadata, then <title>, then the first heading.
func (d *document) title() string {
	if d.og.Title != "" {
		return strings.TrimSpace(d.og.Title)
	}
	if title := d.doc.Find("title").First().Text(); title != "" {
		return collapseWhitespace(title)
	}
	if h1 := d.doc.Find("h1").First().Text(); h1 != "" {
		return collapseWhitespace(h1)
	}
	return ""
}

// text extracts the page's main text. Basic depth yields a flattened,
// whitespace-normalized pull of the body. Advanced depth walks block
// elements in order, marking headings and keeping paragraph boundaries.
func (d *document) text(depth Depth) string {
	d.doc.Find(nonContentSelector).Remove()

	if depth == DepthAdvanced {
		return d.structuredText()
	}

	body := d.doc.Find("body")
	if body.Length() == 0 {
		return collapseWhitespace(d.doc.Text())
	}
	return collapseWhitespace(body.Text())
}

func (d *document) structuredText() string {
	var blocks []string
	d.doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Skip nested blocks (a <p> inside an <li>) so text isn't doubled.
		if sel.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		text := collapseWhitespace(sel.Text())
		if text == "" {
			return
		}
		if level := headingLevel(goquery.NodeName(sel)); level > 0 {
			text = strings.Repeat("#", level) + " " + text
		}
		blocks = append(blocks, text)
	})

	if len(blocks) == 0 {
		body := d.doc.Find("body")
		if body.Length() == 0 {
			return collapseWhitespace(d.doc.Text())
		}
		return collapseWhitespace(body.Text())
	}
	return strings.Join(blocks, "\n\n")
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// images collects up to max image references: the OpenGraph image first,
// then <img> elements in document order, deduplicated by resolved URL.
func (d *document) images(base *url.URL, max int) []Image {
	if max <= 0 {
		return nil
	}
	seen := make(map[string]bool)
	var images []Image

	add := func(src, alt string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		images = append(images, Image{URL: resolved, Alt: collapseWhitespace(alt)})
	}

	for _, ogImage := range d.og.Images {
		if len(images) >= max {
			break
		}
		add(ogImage.URL, d.og.Title)
	}

	d.doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		if src == "" {
			src, _ = sel.Attr("data-src")
		}
		alt, _ := sel.Attr("alt")
		add(src, alt)
		return len(images) < max
	})

	return images
}

func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// truncate caps text at maxChars, cutting back to a word boundary where one
// is reasonably close, and appends a marker.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	text = text[:maxChars]
	if lastSpace := strings.LastIndex(text, " "); lastSpace > maxChars/2 {
		text = text[:lastSpace]
	}
	return text + "...[truncated]"
}
