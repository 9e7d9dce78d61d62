package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_RoutesByStage(t *testing.T) {
	m, err := NewMock(map[string]string{
		"query":    `{"turns": ["q{{ .Call }}"]}`,
		"response": `{"turns": ["{{ .Prompt | upper }}"]}`,
	})
	require.NoError(t, err)

	out, err := m.Complete(context.Background(), UserPrompt(StageQuery, "x", 1, 0))
	require.NoError(t, err)
	assert.Equal(t, `{"turns": ["q1"]}`, out)

	out, err = m.Complete(context.Background(), UserPrompt(StageResponse, "abc", 1, 0))
	require.NoError(t, err)
	assert.Equal(t, `{"turns": ["ABC"]}`, out)
	assert.Equal(t, 2, m.Calls())
}

func TestMock_DefaultAndMissing(t *testing.T) {
	m, err := NewMock(map[string]string{"default": "fallback"})
	require.NoError(t, err)
	out, err := m.Complete(context.Background(), Request{Stage: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", out)

	m, err = NewMock(map[string]string{"query": "q"})
	require.NoError(t, err)
	_, err = m.Complete(context.Background(), Request{Stage: StageResponse})
	assert.True(t, errors.Is(err, ErrNoMockResponse))
}

func TestMock_CancelledContext(t *testing.T) {
	m, err := NewMock(map[string]string{"default": "x"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadMock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responses:\n  query: |\n    ```json\n    {\"turns\": [\"a\", \"b\"]}\n    ```\n"), 0o644))

	m, err := LoadMock(path)
	require.NoError(t, err)
	out, err := m.Complete(context.Background(), Request{Stage: StageQuery})
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"turns\": [\"a\", \"b\"]}\n```", out)
}

func TestLoadMock_Errors(t *testing.T) {
	_, err := LoadMock(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responses: {}\n"), 0o644))
	_, err = LoadMock(path)
	assert.Error(t, err)

	_, err = NewMock(map[string]string{"query": "{{ .Prompt "})
	assert.Error(t, err)
}
