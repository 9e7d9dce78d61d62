package llm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/robbyriverside/dialogen/utils"
	"gopkg.in/yaml.v3"
)

// DefaultMockStage is used when no template matches the request stage.
const DefaultMockStage = "default"

// MockInput is the data a mock response template is rendered with.
type MockInput struct {
	Stage       string
	Prompt      string
	MaxTokens   int
	Temperature float32
	Call        int
}

// Mock renders canned replies from templates keyed by request stage.
type Mock struct {
	templates map[string]*template.Template
	calls     int
}

// LoadMock reads a YAML file of the form:
//
//	responses:
//	  query: '{"turns": ["..."]}'
//	  response: '{"turns": ["..."]}'
//	  default: '...'
func LoadMock(path string) (*Mock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read mock file %s: %w", path, err)
	}
	type mockFile struct {
		Responses map[string]string `yaml:"responses"`
	}
	var file mockFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML in mock file %s: %w", path, err)
	}
	return NewMock(file.Responses)
}

// NewMock parses one template per stage.
func NewMock(responses map[string]string) (*Mock, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("mock defines no responses")
	}
	m := &Mock{templates: make(map[string]*template.Template, len(responses))}
	for stage, tmplStr := range responses {
		tmpl, err := utils.TemplateParse(stage, tmplStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing mock template for %s: %w", stage, err)
		}
		m.templates[stage] = tmpl
	}
	return m, nil
}

// Calls reports how many requests the mock has served.
func (m *Mock) Calls() int { return m.calls }

func (m *Mock) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.calls++
	tmpl, ok := m.templates[req.Stage]
	if !ok {
		tmpl, ok = m.templates[DefaultMockStage]
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoMockResponse, req.Stage)
	}
	var prompt string
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, MockInput{
		Stage:       req.Stage,
		Prompt:      prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Call:        m.calls,
	})
	if err != nil {
		return "", fmt.Errorf("error executing mock template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
