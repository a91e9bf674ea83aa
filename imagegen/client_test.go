package imagegen_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dushyant-2004/Zeno/imagegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/1.png"}]}`))
	}))
	defer srv.Close()

	client := imagegen.New("test-key", imagegen.WithBaseURL(srv.URL), imagegen.WithModel("img-test"))
	result, err := client.Generate(context.Background(), "a red bicycle", "sketch")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, "img-test", body["model"])
	assert.Equal(t, float64(1), body["n"])
	assert.Equal(t, "1024x1024", body["size"])
	assert.Contains(t, body["prompt"], "a red bicycle")
	assert.Contains(t, body["prompt"], "pencil sketch")

	assert.Equal(t, "https://img.example/1.png", result.URL)
	assert.Equal(t, "a red bicycle", result.Prompt)
	assert.Contains(t, result.EnhancedPrompt, "pencil sketch")
	assert.Equal(t, 1024, result.Width)
	assert.Equal(t, 1024, result.Height)
	assert.Equal(t, "img-test", result.Model)
}

func TestClient_GenerateUsesRevisedPrompt(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/2.png","revised_prompt":"a shiny red bicycle at dawn"}]}`))
	}))
	defer srv.Close()

	client := imagegen.New("key", imagegen.WithBaseURL(srv.URL))
	result, err := client.Generate(context.Background(), "a red bicycle", "")
	require.NoError(t, err)
	assert.Equal(t, "a shiny red bicycle at dawn", result.EnhancedPrompt)
	assert.Equal(t, "a red bicycle", result.Prompt)
}

func TestClient_HTTPErrorShortReason(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Your prompt was rejected"}}`))
	}))
	defer srv.Close()

	client := imagegen.New("key", imagegen.WithBaseURL(srv.URL))
	_, err := client.Generate(context.Background(), "something", "")
	require.Error(t, err)
	assert.Equal(t, "imagegen: Your prompt was rejected", err.Error())
}

func TestClient_EmptyDataIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := imagegen.New("key", imagegen.WithBaseURL(srv.URL))
	_, err := client.Generate(context.Background(), "something", "")
	require.Error(t, err)
	assert.Equal(t, "imagegen: response contained no images", err.Error())
}
