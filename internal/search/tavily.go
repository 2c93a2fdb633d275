// Package search provides the Tavily web-search backend client.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// DefaultEndpoint is the Tavily search API endpoint.
// Docs: https://docs.tavily.com/
const DefaultEndpoint = "https://api.tavily.com/search"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 30 * time.Second

// Params holds the fixed search parameters applied to every query.
type Params struct {
	MaxResults    int
	SearchDepth   string
	IncludeAnswer bool
}

// TavilyClient calls the Tavily search API. Safe for concurrent use.
type TavilyClient struct {
	apiKey   string
	endpoint string
	params   Params
	client   *http.Client
}

// NewTavilyClient creates a Tavily client. The API key is required; a
// missing key is the one construction failure the pipeline treats as fatal.
func NewTavilyClient(apiKey, endpoint string, params Params) (*TavilyClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Tavily API key required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if params.MaxResults <= 0 {
		params.MaxResults = 3
	}
	if params.SearchDepth == "" {
		params.SearchDepth = "advanced"
	}

	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		params:   params,
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Search runs one query against the Tavily API and returns its raw results.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]models.RawResult, error) {
	reqBody := map[string]any{
		"api_key":        c.apiKey,
		"query":          query,
		"max_results":    c.params.MaxResults,
		"search_depth":   c.params.SearchDepth,
		"include_answer": c.params.IncludeAnswer,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily API error (status %d): %s", resp.StatusCode, string(body))
	}

	var tavilyResp struct {
		Results []struct {
			Title   string  `json:"title"`
			URL     string  `json:"url"`
			Content string  `json:"content"`
			Score   float64 `json:"score"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tavilyResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]models.RawResult, 0, len(tavilyResp.Results))
	for _, r := range tavilyResp.Results {
		results = append(results, models.RawResult{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		})
	}

	return results, nil
}
