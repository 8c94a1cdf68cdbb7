package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen3:4b", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(GenerateResponse{Response: "Marhaba!", Done: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "qwen3:4b")
	out, err := client.GenerateContent(context.Background(), "greet me in Dubai style")
	require.NoError(t, err)
	assert.Equal(t, "Marhaba!", out)
}

func TestGenerateContentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "missing-model")
	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGenerateContentUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "qwen3:4b")
	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
}
