package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIProvider implements the Generator interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	client := openai.NewClientWithConfig(clientConfig)

	return &OpenAIProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsActive checks if the provider is properly configured
func (p *OpenAIProvider) IsActive(ctx context.Context) bool {
	// Simple check: try to list models (lightweight API call)
	_, err := p.client.ListModels(ctx)
	if err != nil {
		// Log the actual error for debugging (this helps users diagnose API key issues)
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Generate produces free text using OpenAI's Chat Completions API
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	chatReq := p.buildRequest(req.System, req.Prompt, req.MaxTokens)
	if req.Temperature > 0 {
		chatReq.Temperature = req.Temperature
	} else if p.config.Temperature > 0 {
		chatReq.Temperature = p.config.Temperature
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateStructured produces a schema-constrained object via OpenAI's
// structured-output response format, derived from out's type
func (p *OpenAIProvider) GenerateStructured(ctx context.Context, req StructuredRequest, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	name := req.SchemaName
	if name == "" {
		name = "result"
	}

	chatReq := p.buildRequest(req.System, req.Prompt, req.MaxTokens)
	chatReq.Temperature = 0.1 // Structured extraction wants determinism
	chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   name,
			Schema: schema,
			Strict: true,
		},
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from OpenAI")
	}

	content := extractJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("unmarshal structured response: %w", err)
	}

	return nil
}

func (p *OpenAIProvider) buildRequest(system, prompt string, maxTokens int) openai.ChatCompletionRequest {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini // Default to gpt-4o-mini
	}

	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 4000
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	return openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
}

func (p *OpenAIProvider) timeout() time.Duration {
	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return timeout
}
