package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensteps/greensteps/internal/advice/openai"
	"github.com/greensteps/greensteps/internal/provider/resilience"
)

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ****", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, 0.7, body["temperature"])

		messages, ok := body["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 2)
		first := messages[0].(map[string]interface{})
		second := messages[1].(map[string]interface{})
		assert.Equal(t, "system", first["role"])
		assert.Equal(t, "user", second["role"])
		assert.Equal(t, "quiz summary", second["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"- Take the train"}}]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	text, err := client.Complete(context.Background(), "be helpful", "quiz summary")
	require.NoError(t, err)
	assert.Equal(t, "- Take the train", text)
}

func TestClient_Complete_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		Model:      "gpt-4o",
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion text")
}

func TestClient_Complete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{
		APIKey:     "****",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	assert.Error(t, err)
}
