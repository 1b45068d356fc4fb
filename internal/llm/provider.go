package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured content from a language model.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the provider
	// requests JSON matching it and Response.Content holds the validated
	// object.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider calls.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role, e.g. a gentle language tutor.
	System string

	// Messages is the conversation. Lesson generation sends one user message.
	Messages []Message

	// Schema, when set, selects the provider's structured output mode.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON a response must conform to.
type Schema struct {
	// Name is a kebab-case identifier such as "vocabulary-lesson". It also
	// keys the compiled schema cache.
	Name string

	Description string

	// Definition is a JSON Schema document.
	Definition map[string]any
}

// Response is the model output.
type Response struct {
	// Content is the validated JSON object when a schema was requested,
	// the raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is one of "end", "max_tokens", "error".
	StopReason string
}

// Usage is the token consumption of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
