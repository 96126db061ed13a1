package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ImageGenerator produces a single illustration for a text prompt.
// Providers without an image backend do not implement it.
type ImageGenerator interface {
	// GenerateImage returns the image payload, or a nil Image when the
	// backend answered without one.
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)
}

// Model tiers. A Request may name a tier instead of a concrete model ID;
// each provider maps the tier to one of its own models.
const (
	TierFast = "fast"
	TierPro  = "pro"
)

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Lesson generation sends one
	// user message, optionally carrying an attachment.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// Model overrides the provider's configured model for this request.
	// It is either a tier (TierFast, TierPro) or a provider model ID.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role        Role
	Content     string
	Attachments []Attachment
}

// Attachment is a binary payload sent alongside a message.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// IsText reports whether the attachment can be inlined as plain text.
func (a Attachment) IsText() bool {
	return strings.HasPrefix(a.MIMEType, "text/")
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "lesson-plan".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ImageRequest describes a single illustration request.
type ImageRequest struct {
	Prompt string
	Model  string
}

// Image is an inline image payload.
type Image struct {
	MIMEType string
	Data     []byte
	Model    string
}
