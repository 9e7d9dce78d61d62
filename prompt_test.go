package dialogen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTemplate_Render(t *testing.T) {
	p, err := ParsePromptTemplate("q", "Context: {{ .context }}\nFlow: {{ .info_flows_steps }}\nTag: {{ .extra | upper }}")
	require.NoError(t, err)

	out, err := p.Render(map[string]any{"context": "A - B", "info_flows_steps": "f: x --> y", "extra": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Context: A - B\nFlow: f: x --> y\nTag: HI", out)
}

func TestPromptTemplate_MissingKeysRenderEmpty(t *testing.T) {
	p, err := ParsePromptTemplate("r", "[{{ .context }}][{{ .info_flows_steps }}]")
	require.NoError(t, err)

	out, err := p.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "[][]", out)
}

func TestLoadPromptTemplate(t *testing.T) {
	for _, name := range []string{"query_template_en.txt", "response_template_en.txt"} {
		p, err := LoadPromptTemplate(filepath.Join("prompt", name))
		require.NoError(t, err, name)
		out, err := p.Render(map[string]any{"context": "Support - Printer"})
		require.NoError(t, err)
		assert.Contains(t, out, "Support - Printer")
		assert.Contains(t, out, `{"turns"`)
	}

	_, err := LoadPromptTemplate(filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorContains(t, err, "cannot read prompt template")

	_, err = ParsePromptTemplate("bad", "{{ .context ")
	assert.ErrorContains(t, err, "invalid prompt template")
}
