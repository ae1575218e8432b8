package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahcohcat/gofigure-interrogation/config"
)

func TestGenerateResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req["model"])
		assert.Equal(t, "be a writer", req["system"])
		assert.Equal(t, "json", req["format"])

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"model":"llama3.2","response":"{\"meta\":{}}","done":true}` + "\n"))
	}))
	defer srv.Close()

	c, err := NewClient(&config.OllamaConfig{Host: srv.URL, Model: "llama3.2", Timeout: 5})
	require.NoError(t, err)

	out, err := c.GenerateResponse(context.Background(), "be a writer", "a train")
	require.NoError(t, err)
	assert.Equal(t, `{"meta":{}}`, out)
}

func TestIsModelAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest","model":"llama3.2:latest"},{"name":"mistral","model":"mistral"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(&config.OllamaConfig{Host: srv.URL, Model: "mistral"})
	require.NoError(t, err)
	assert.NoError(t, c.IsModelAvailable(context.Background()))

	c.config.Model = "phi3"
	err = c.IsModelAvailable(context.Background())
	assert.ErrorContains(t, err, "model phi3 not found")
}
