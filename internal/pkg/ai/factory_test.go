package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

func TestProviderForModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4.1-mini", "openai"},
		{"gpt-5", "openai"},
		{"gemini-2.0-flash", "google"},
		{"gemini-2.5-pro", "google"},
	}
	for _, tt := range tests {
		name, err := ProviderForModel(tt.model)
		require.NoError(t, err)
		assert.Equal(t, tt.want, name)
	}

	_, err := ProviderForModel("llama-3")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("gpt-4.1-mini", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4.1-mini", p.Model())

	p, err = NewProvider("gemini-2.0-flash", "AIza-test")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())
	assert.Equal(t, "gemini-2.0-flash", p.Model())

	_, err = NewProvider("mystery-model", "key")
	assert.Error(t, err)
}

func TestKnownModelsAreRoutable(t *testing.T) {
	for _, model := range KnownModels {
		_, err := ProviderForModel(model)
		assert.NoError(t, err, model)
	}
}
