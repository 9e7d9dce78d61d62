package dialogen

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"text/template"

	"github.com/robbyriverside/dialogen/utils"
)

// PromptTemplate is a loaded prompt file.
type PromptTemplate struct {
	Path string
	tmpl *template.Template
}

// LoadPromptTemplate reads and parses a prompt file. Placeholders are
// {{ .context }} and {{ .info_flows_steps }}; sprig functions are available.
func LoadPromptTemplate(path string) (*PromptTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read prompt template %s: %w", path, err)
	}
	return ParsePromptTemplate(path, string(data))
}

func ParsePromptTemplate(name, text string) (*PromptTemplate, error) {
	tmpl, err := utils.TemplateParse(name, text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s: %w", name, err)
	}
	return &PromptTemplate{Path: name, tmpl: tmpl}, nil
}

// Render fills the template. context and info_flows_steps default to "".
func (p *PromptTemplate) Render(vars map[string]any) (string, error) {
	data := map[string]any{
		"context":          "",
		"info_flows_steps": "",
	}
	maps.Copy(data, vars)
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("cannot render prompt %s: %w", p.Path, err)
	}
	return buf.String(), nil
}
