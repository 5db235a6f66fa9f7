package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

const requestTimeout = 30 * time.Second

// OpenAIProvider generates commit messages through the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the given model and API key.
// baseURL overrides the API endpoint when non-empty, which also serves
// tests pointed at a local server.
func NewOpenAIProvider(model, apiKey, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Model() string { return p.model }

// GenerateMessage performs a single chat completion request.
func (p *OpenAIProvider) GenerateMessage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	apperrors.LogAPIRequest(p.Name(), p.model, len(prompt))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(err)
		}
		return "", apperrors.NewGenerationError(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrGeneration, "openai returned no choices")
	}

	// The generated text is passed through as-is; only surrounding
	// whitespace is trimmed.
	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", apperrors.New(apperrors.ErrGeneration, "openai returned an empty message")
	}

	apperrors.LogAPIResponse(p.Name(), len(message), time.Since(start))
	return message, nil
}
