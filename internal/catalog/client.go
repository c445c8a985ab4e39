package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	baseURL   = "https://music.youtube.com/youtubei/v1"
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	origin    = "https://music.youtube.com"

	clientName    = "WEB_REMIX"
	clientVersion = "1.20240918.01.00"

	// songsFilterParams restricts results to the "Songs" shelf, excluding
	// videos, albums and playlists.
	songsFilterParams = "EgWKAQIIAWoMEA4QChADEAQQCRAF"
)

// Client searches YouTube Music through its InnerTube API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. No request timeout is set; callers
// bound requests through the context if they need to.
func NewClient() *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Search returns up to PageSize songs matching q, in catalog rank order.
// Zero matches is an empty slice, not an error. Failures are not retried.
func (c *Client) Search(ctx context.Context, q Query) ([]Candidate, error) {
	if strings.TrimSpace(q.Title) == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(newSearchRequest(q.String()))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search?alt=json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: API status %d: %s", ErrCatalogUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrCatalogUnavailable, err)
	}

	candidates, err := result.candidates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return candidates, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", origin)
	req.Header.Set("X-Origin", origin)
}

func newSearchRequest(query string) searchRequest {
	return searchRequest{
		Context: requestContext{
			Client: requestClient{
				ClientName:    clientName,
				ClientVersion: clientVersion,
				HL:            "en",
			},
		},
		Query:  query,
		Params: songsFilterParams,
	}
}
