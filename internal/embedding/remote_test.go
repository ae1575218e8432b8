package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "custom-model", req.Model)
		assert.Equal(t, "test text", req.Input)

		json.NewEncoder(w).Encode(openAIEmbedResponse{
			Data: []openAIEmbedData{{Embedding: []float64{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder("test-key", WithOpenAIBaseURL(srv.URL+"/"), WithOpenAIModel("custom-model"))
	vec, err := e.Embed(context.Background(), "test text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "openai-custom-model", e.Name())
}

func TestOpenAIEmbedderErrors(t *testing.T) {
	_, err := NewOpenAIEmbedder("").Embed(context.Background(), "x")
	assert.Error(t, err)

	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer limited.Close()
	_, err = NewOpenAIEmbedder("k", WithOpenAIBaseURL(limited.URL)).Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "429")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openAIEmbedResponse{})
	}))
	defer empty.Close()
	_, err = NewOpenAIEmbedder("k", WithOpenAIBaseURL(empty.URL)).Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "empty embedding")
}

func TestOllamaEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req["model"])
		assert.Equal(t, "where were you", req["input"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":      "nomic-embed-text",
			"embeddings": [][]float32{{0.5, 0.25}},
		})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(srv.URL, "")
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "where were you")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
	assert.Equal(t, "ollama-nomic-embed-text", e.Name())
}

func TestOllamaEmbedderEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{}})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(srv.URL, "m")
	require.NoError(t, err)
	_, err = e.Embed(context.Background(), "x")
	assert.Error(t, err)
}
