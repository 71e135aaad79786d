// Package search provides the web search capability the agent may attach to
// a model invocation. It wraps the Tavily search API in a small client and
// exposes it as a Genkit tool.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/botforge/botforge/internal/log"
)

const (
	// TavilyAPIBase is the base URL for the Tavily search API.
	TavilyAPIBase = "https://api.tavily.com"

	// requestTimeout bounds a single search call.
	requestTimeout = 30 * time.Second

	// maxResponseSize limits how much of the search response is read (1MB).
	maxResponseSize = 1 << 20
)

// Result is one web search hit returned to the model.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// searchRequest is the Tavily search request body.
type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

// searchResponse is the Tavily search response body.
type searchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Client is a lightweight Tavily API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a new Tavily API client.
// Returns an error if the API key is empty or the logger is nil.
func NewClient(apiKey string, logger log.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tavily api key is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: TavilyAPIBase,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}, nil
}

// SetBaseURL overrides the API endpoint. Used by tests to point the client
// at a local httptest server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Search runs one web search and returns at most maxResults hits.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults < 1 {
		maxResults = 1
	}

	body, err := json.Marshal(searchRequest{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	results := parsed.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	c.logger.Debug("web search completed", "query", query, "results", len(results))
	return results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
