package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "events in Dubai this weekend", req.Query)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.Equal(t, defaultMaxResults, req.MaxResults)

		json.NewEncoder(w).Encode(SearchResponse{
			Query: req.Query,
			Results: []SearchResult{
				{Title: "Dubai events", URL: "https://example.com", Content: "Concert listings", Score: 0.9},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5)
	resp, err := client.Search(context.Background(), &SearchRequest{Query: "events in Dubai this weekend"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Dubai events", resp.Results[0].Title)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client := NewClient("test-key", DefaultBaseURL, 5)
	_, err := client.Search(context.Background(), &SearchRequest{})
	require.Error(t, err)
}

func TestExecuteWithoutAPIKeyReportsUnavailable(t *testing.T) {
	tool := &SearchTool{client: NewClient("", DefaultBaseURL, 5)}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "dubai news"})
	require.NoError(t, err)

	outcome, ok := out.(*SearchOutcome)
	require.True(t, ok)
	assert.False(t, outcome.Available)
	assert.Nil(t, outcome.Response)
	assert.NotEmpty(t, outcome.Error)
}

func TestExecuteTransportFailureReturnsOutcome(t *testing.T) {
	// nothing listens here, the search must fail fast
	tool := &SearchTool{client: NewClient("test-key", "http://127.0.0.1:1", 1)}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "dubai news"})
	require.NoError(t, err)

	outcome, ok := out.(*SearchOutcome)
	require.True(t, ok)
	assert.True(t, outcome.Available)
	assert.Nil(t, outcome.Response)
	assert.NotEmpty(t, outcome.Error)
}

func TestExecuteUpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	tool := &SearchTool{client: NewClient("test-key", server.URL, 5)}
	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "dubai news"})
	require.NoError(t, err)

	outcome := out.(*SearchOutcome)
	assert.Contains(t, outcome.Error, "429")
}

func TestExecuteRequiresQuery(t *testing.T) {
	tool := &SearchTool{client: NewClient("test-key", DefaultBaseURL, 5)}
	_, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.Error(t, err)
}
