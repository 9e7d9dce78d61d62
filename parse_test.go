package dialogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tagged", "```json\n{\"turns\": []}\n```", `{"turns": []}`},
		{"bare", "```\n{\"turns\": []}\n```", `{"turns": []}`},
		{"none", `  {"turns": []}  `, `{"turns": []}`},
		{"open only", "```json\n{}", "```json\n{}"},
		{"fence alone", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}

func TestParseTurns(t *testing.T) {
	turns, err := ParseTurns("```json\n{\"turns\": [\"a\",\"b\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, turns)

	turns, err = ParseTurns(`{"turns": ["x"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, turns)

	turns, err = ParseTurns(`{"turns": null}`)
	require.NoError(t, err)
	assert.Equal(t, []string{}, turns)

	turns, err = ParseTurns(`{"other": 1}`)
	require.NoError(t, err)
	assert.Equal(t, []string{}, turns)
}

func TestParseTurns_Invalid(t *testing.T) {
	for _, reply := range []string{
		"Sure! Here are some questions.",
		`["a", "b"]`,
		`{"turns": [1, 2]}`,
		`{"turns": "a"}`,
		"null",
		"```json\nnull\n```",
		"",
	} {
		_, err := ParseTurns(reply)
		assert.ErrorIs(t, err, ErrInvalidResponse, reply)
	}
}
