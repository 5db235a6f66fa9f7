package ai

import (
	"fmt"
	"strings"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

// KnownModels lists the models offered in the regeneration menu.
var KnownModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-pro",
	"gpt-4.1-mini",
}

// ProviderForModel maps a model name to its provider name.
func ProviderForModel(model string) (string, error) {
	switch {
	case strings.HasPrefix(model, "gpt-"):
		return "openai", nil
	case strings.HasPrefix(model, "gemini-"):
		return "google", nil
	default:
		return "", apperrors.NewValidationError(
			fmt.Sprintf("unknown model %q: model names must start with gpt- or gemini-", model))
	}
}

// NewProvider creates the Provider implementation for the model.
func NewProvider(model, apiKey string) (Provider, error) {
	name, err := ProviderForModel(model)
	if err != nil {
		return nil, err
	}
	switch name {
	case "openai":
		return NewOpenAIProvider(model, apiKey, ""), nil
	default:
		return NewGeminiProvider(model, apiKey, ""), nil
	}
}
