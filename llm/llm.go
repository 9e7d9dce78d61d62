// Package llm wraps chat-completion backends behind a single Completer interface.
// The OpenAI backend talks to any OpenAI-compatible endpoint, the Mock backend
// renders canned replies from a YAML file, and WithRetry adds a bounded
// fixed-delay retry loop around either.
package llm

import (
	"context"
	"errors"
)

var (
	ErrMissingAPIKey   = errors.New("API key must be set")
	ErrEmptyCompletion = errors.New("completion returned no choices")
	ErrNoMockResponse  = errors.New("no mock response for stage")
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Stage names used to label requests.
const (
	StageQuery    = "query"
	StageResponse = "response"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Request is a single chat-completion call.
type Request struct {
	// Stage labels the request for logging and mock routing. Not sent upstream.
	Stage       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Completer returns the trimmed text of the first completion choice.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// UserPrompt builds the single user message request used by the generator.
func UserPrompt(stage, prompt string, maxTokens int, temperature float32) Request {
	return Request{
		Stage:       stage,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
