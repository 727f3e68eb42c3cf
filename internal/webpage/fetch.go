package webpage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; link-librarian/1.0)"

// Page is the flattened view of a fetched document.
type Page struct {
	Title string
	Body  string
}

// Fetcher retrieves webpages and flattens them to plain text. Every fetch is
// bounded by the client timeout so one slow host cannot stall a whole batch.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a 10 second request timeout
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch downloads url and extracts its title and body text
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	page, err := Extract(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page text: %v", err)
	}
	return page, nil
}
