// Package scanner extracts a simulation brief from arbitrary marketing
// content: a product page URL or a blob of copy pasted into the API.
package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dejavas-ai/arena/core"
)

// ContentType classifies what kind of page or copy was scanned.
type ContentType string

const (
	ProductPage   ContentType = "product_page"
	MarketingCopy ContentType = "marketing_copy"
	SocialMedia   ContentType = "social_media"
	LandingPage   ContentType = "landing_page"
)

// ScannedContent is the structured view of a scanned page or text blob.
type ScannedContent struct {
	Type        ContentType `json:"content_type"`
	URL         string      `json:"url,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price,omitempty"`
	Features    []string    `json:"features,omitempty"`
	RawText     string      `json:"raw_text,omitempty"`
}

const (
	maxFeatures = 10
	maxRawText  = 2000
)

var priceRe = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)

// featureMarkers flag list items worth treating as product features.
var featureMarkers = []string{"feature", "benefit", "include", "comes with"}

// Scanner fetches and parses content.
type Scanner struct {
	client *http.Client
}

// New creates a scanner with a bounded HTTP timeout.
func New() *Scanner {
	return &Scanner{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ScanURL fetches a URL and extracts structured content from its HTML.
func (s *Scanner) ScanURL(ctx context.Context, url string) (*ScannedContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", url, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: status %d", url, resp.StatusCode)
	}
	return Parse(resp.Body, url)
}

// ScanText wraps raw marketing copy as scanned content.
func (s *Scanner) ScanText(text string) *ScannedContent {
	return &ScannedContent{
		Type:    MarketingCopy,
		RawText: truncate(strings.TrimSpace(text), maxRawText),
	}
}

// Parse extracts structured content from an HTML document.
func Parse(r io.Reader, srcURL string) (*ScannedContent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	content := &ScannedContent{
		Type:  detectContentType(srcURL),
		URL:   srcURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content.Description = strings.TrimSpace(desc)
	}

	seen := make(map[string]bool)
	doc.Find("li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		lower := strings.ToLower(text)
		for _, marker := range featureMarkers {
			if strings.Contains(lower, marker) && !seen[text] {
				seen[text] = true
				content.Features = append(content.Features, text)
				break
			}
		}
		return len(content.Features) < maxFeatures
	})

	body := squashWhitespace(doc.Find("body").Text())
	content.RawText = truncate(body, maxRawText)

	if m := priceRe.FindStringSubmatch(body); m != nil {
		if price, err := strconv.ParseFloat(m[1], 64); err == nil {
			content.Price = price
		}
	}
	return content, nil
}

func detectContentType(url string) ContentType {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "product") || strings.Contains(lower, "item") || strings.Contains(lower, "amazon."):
		return ProductPage
	case strings.Contains(lower, "pricing") || strings.Contains(lower, "features") || strings.Contains(lower, "signup"):
		return MarketingCopy
	case strings.Contains(lower, "facebook.") || strings.Contains(lower, "twitter.") || strings.Contains(lower, "instagram."):
		return SocialMedia
	default:
		return ProductPage
	}
}

// BriefFromContent synthesizes a simulation brief from scanned content.
// Feature bullets win; otherwise leading sentences of the raw text are
// promoted, and as a last resort a single generic feature is made up so
// the simulation always has something to debate.
func BriefFromContent(content *ScannedContent) core.Brief {
	var features []core.Feature
	for _, f := range content.Features {
		features = append(features, core.Feature{
			Title:       truncate(f, 50),
			Description: f,
		})
	}

	if len(features) == 0 && content.RawText != "" {
		sentences := strings.Split(content.RawText, ".")
		if len(sentences) > 5 {
			sentences = sentences[:5]
		}
		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) > 10 {
				features = append(features, core.Feature{
					Title:       truncate(sentence, 50),
					Description: sentence,
				})
			}
		}
	}

	if len(features) == 0 {
		title := content.Title
		if title == "" {
			title = "Product Feature"
		}
		description := content.Description
		if description == "" {
			description = content.RawText
		}
		if description == "" {
			description = "Product offering"
		}
		features = append(features, core.Feature{Title: title, Description: description})
	}

	productName := content.Title
	if productName == "" {
		productName = "Scanned Product"
	}
	return core.Brief{
		ProductName: productName,
		Description: content.Description,
		Features:    features,
	}
}

func squashWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
