package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"link_librarian/internal/model"
)

// AlgoliaIndex talks to the Algolia REST API. One Algolia index per team id.
type AlgoliaIndex struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAlgoliaIndex creates a client for the given application
func NewAlgoliaIndex(appID, apiKey string) *AlgoliaIndex {
	return &AlgoliaIndex{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: fmt.Sprintf("https://%s.algolia.net", appID),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewAlgoliaIndexWithBaseURL is NewAlgoliaIndex pointed at a different host,
// for tests.
func NewAlgoliaIndexWithBaseURL(appID, apiKey, baseURL string) *AlgoliaIndex {
	idx := NewAlgoliaIndex(appID, apiKey)
	idx.baseURL = baseURL
	return idx
}

// Upsert writes the document under its link as object id. Algolia's PUT-object
// endpoint is insert-or-overwrite, which is exactly the idempotence the
// indexer relies on.
func (a *AlgoliaIndex) Upsert(ctx context.Context, teamID string, doc model.IndexedDocument) error {
	endpoint := fmt.Sprintf("%s/1/indexes/%s/%s",
		a.baseURL, url.PathEscape(teamID), url.PathEscape(doc.Link))

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("upsert request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upsert returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Search runs one page of a query, retrieving only the link and title
// attributes.
func (a *AlgoliaIndex) Search(ctx context.Context, teamID, query string, page int) (*model.SearchResultPage, error) {
	endpoint := fmt.Sprintf("%s/1/indexes/%s/query", a.baseURL, url.PathEscape(teamID))

	params := url.Values{}
	params.Set("query", query)
	params.Set("attributesToRetrieve", "link,title")
	params.Set("page", strconv.Itoa(page))
	params.Set("hitsPerPage", strconv.Itoa(HitsPerPage))

	payload, err := json.Marshal(map[string]string{"params": params.Encode()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, body)
	}

	var result model.SearchResultPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %v", err)
	}
	return &result, nil
}

func (a *AlgoliaIndex) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", a.appID)
	req.Header.Set("X-Algolia-API-Key", a.apiKey)
}
