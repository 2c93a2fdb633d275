package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTavilyClientRequiresKey(t *testing.T) {
	_, err := NewTavilyClient("", "", Params{})
	require.Error(t, err)
}

func TestNewTavilyClientDefaults(t *testing.T) {
	c, err := NewTavilyClient("key", "", Params{})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, 3, c.params.MaxResults)
	assert.Equal(t, "advanced", c.params.SearchDepth)
}

func TestSearchSendsConfiguredParams(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"Comedy Night","url":"https://example.com/a","content":"Stand-up Friday","score":0.91},
			{"title":"Open Mic","url":"https://example.com/b","content":"Weekly open mic","score":0.72}
		]}`))
	}))
	defer srv.Close()

	c, err := NewTavilyClient("test-key", srv.URL, Params{
		MaxResults:    3,
		SearchDepth:   "advanced",
		IncludeAnswer: true,
	})
	require.NoError(t, err)

	results, err := c.Search(context.Background(), "comedy shows chicago")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotBody["api_key"])
	assert.Equal(t, "comedy shows chicago", gotBody["query"])
	assert.Equal(t, float64(3), gotBody["max_results"])
	assert.Equal(t, "advanced", gotBody["search_depth"])
	assert.Equal(t, true, gotBody["include_answer"])

	require.Len(t, results, 2)
	assert.Equal(t, "Comedy Night", results[0].Title)
	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, 0.91, results[0].Score)
	assert.Empty(t, results[0].QueryContext, "client does not set query context; the fetcher does")
}

func TestSearchNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewTavilyClient("bad-key", srv.URL, Params{})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearchMalformedResponseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c, err := NewTavilyClient("key", srv.URL, Params{})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "anything")
	require.Error(t, err)
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c, err := NewTavilyClient("key", srv.URL, Params{})
	require.NoError(t, err)

	results, err := c.Search(context.Background(), "nothing anywhere")
	require.NoError(t, err)
	assert.Empty(t, results)
}
