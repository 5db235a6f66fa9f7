package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider generates commit messages through the Google Gemini API.
type GeminiProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiProvider creates a provider for the given model and API key.
// baseURL overrides the API endpoint when non-empty.
func NewGeminiProvider(model, apiKey, baseURL string) *GeminiProvider {
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	return &GeminiProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (p *GeminiProvider) Name() string { return "google" }

func (p *GeminiProvider) Model() string { return p.model }

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateMessage performs a single generateContent request.
func (p *GeminiProvider) GenerateMessage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	apperrors.LogAPIRequest(p.Name(), p.model, len(prompt))

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: SystemPrompt()}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", apperrors.NewGenerationError(p.Name(), err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewGenerationError(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(err)
		}
		return "", apperrors.NewGenerationError(p.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewGenerationError(p.Name(), err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.NewGenerationError(p.Name(),
			fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err))
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("gemini request failed with status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, parsed.Error.Message)
		}
		return "", apperrors.New(apperrors.ErrGeneration, msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.New(apperrors.ErrGeneration, "gemini returned no candidates")
	}

	message := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if message == "" {
		return "", apperrors.New(apperrors.ErrGeneration, "gemini returned an empty message")
	}

	apperrors.LogAPIResponse(p.Name(), len(message), time.Since(start))
	return message, nil
}
