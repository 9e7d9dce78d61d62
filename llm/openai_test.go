package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
}

func chatServer(t *testing.T, seen *chatRequest, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAI_Validation(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{Model: "m"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewOpenAI(OpenAIConfig{APIKey: "k"})
	assert.Error(t, err)

	o, err := NewOpenAI(OpenAIConfig{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "m", o.Model())
}

func TestOpenAI_Complete(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, &seen, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "Qwen-2.5-72B-Instruct",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  {\"turns\": [\"a\"]}\n"}, "finish_reason": "stop"}]
	}`)

	o, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "Qwen-2.5-72B-Instruct"})
	require.NoError(t, err)

	out, err := o.Complete(context.Background(), UserPrompt(StageQuery, "make questions", 800, 0.8))
	require.NoError(t, err)
	assert.Equal(t, `{"turns": ["a"]}`, out)

	assert.Equal(t, "Qwen-2.5-72B-Instruct", seen.Model)
	assert.Equal(t, 800, seen.MaxTokens)
	assert.InDelta(t, 0.8, seen.Temperature, 0.0001)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, RoleUser, seen.Messages[0].Role)
	assert.Equal(t, "make questions", seen.Messages[0].Content)
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := chatServer(t, nil, `{"id": "x", "object": "chat.completion", "choices": []}`)
	o, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL + "/v1", APIKey: "sk-test", Model: "m"})
	require.NoError(t, err)

	_, err = o.Complete(context.Background(), UserPrompt(StageQuery, "p", 10, 0.1))
	assert.True(t, errors.Is(err, ErrEmptyCompletion))
}

func TestOpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	o, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL + "/v1", APIKey: "sk-test", Model: "m"})
	require.NoError(t, err)

	_, err = o.Complete(context.Background(), UserPrompt(StageQuery, "p", 10, 0.1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error")
}
