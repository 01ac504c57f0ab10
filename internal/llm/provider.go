package llm

import (
	"context"
	"strings"
)

// Generator defines the interface for text-generation providers
type Generator interface {
	// Name returns the provider name
	Name() string

	// Generate produces free text for a prompt
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// GenerateStructured produces a schema-constrained object, decoding the
	// provider's JSON response into out
	GenerateStructured(ctx context.Context, req StructuredRequest, out any) error

	// IsActive checks if the provider is properly configured and accessible,
	// so callers can pre-emptively choose a degraded path
	IsActive(ctx context.Context) bool
}

// GenerateRequest contains the input for free-text generation
type GenerateRequest struct {
	// Prompt is the user-facing instruction
	Prompt string

	// System is an optional system instruction
	System string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling; 0 means provider default
	Temperature float32
}

// StructuredRequest contains the input for schema-constrained generation
type StructuredRequest struct {
	// Prompt is the instruction, which should describe the expected fields
	Prompt string

	// System is an optional system instruction
	System string

	// SchemaName labels the schema for providers with native schema support
	SchemaName string

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for free-text generation
	Temperature float32
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     60,
		MaxTokens:   4000,
		Temperature: 0.7,
	}
}

// extractJSON strips markdown code fences and surrounding chatter from a
// response that should contain a single JSON object. Providers without a
// native JSON mode routinely wrap output in ```json fences.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			text = rest[:j]
		} else {
			text = rest
		}
		text = strings.TrimSpace(text)
	}

	// Cut to the outermost object braces
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
