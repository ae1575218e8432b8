package openai

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

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)
}

func TestGenerateResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be a writer", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	c, err := NewClient(&config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	out, err := c.GenerateResponse(context.Background(), "be a writer", "write a case")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestGenerateResponseErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer down":
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		default:
			w.Write([]byte(`{"choices":[]}`))
		}
	}))
	defer srv.Close()

	down, err := NewClient(&config.OpenAIConfig{APIKey: "down", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = down.GenerateResponse(context.Background(), "", "x")
	assert.ErrorContains(t, err, "status 503")

	empty, err := NewClient(&config.OpenAIConfig{APIKey: "empty", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = empty.GenerateResponse(context.Background(), "", "x")
	assert.ErrorContains(t, err, "no choices")
}

func TestIsModelAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini"},{"id":"gpt-4o"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(&config.OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.NoError(t, c.IsModelAvailable(context.Background()))

	c.config.Model = "o1"
	assert.ErrorContains(t, c.IsModelAvailable(context.Background()), "model o1 not found")
}
