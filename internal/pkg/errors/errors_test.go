package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want int
	}{
		{"no staged changes is a user error", ErrNoStagedChanges, 1},
		{"config is a user error", ErrConfig, 1},
		{"validation is a user error", ErrValidation, 1},
		{"missing credential is a user error", ErrMissingCredential, 1},
		{"git failure is a system error", ErrGitCommandFailed, 2},
		{"filesystem is a system error", ErrFileSystem, 2},
		{"generation is an external error", ErrGeneration, 3},
		{"timeout is an external error", ErrTimeout, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.ExitCode())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 1, GetExitCode(NewNoStagedChangesError()))
	assert.Equal(t, 3, GetExitCode(NewGenerationError("openai", errors.New("boom"))))

	// Non-AppError values fall back to the generic failure code.
	assert.Equal(t, 1, GetExitCode(errors.New("plain")))

	// Wrapped AppErrors keep their class.
	wrapped := fmt.Errorf("outer: %w", NewTimeoutError(errors.New("deadline")))
	assert.Equal(t, 3, GetExitCode(wrapped))
}

func TestIsCode(t *testing.T) {
	err := NewNotFoundError("default_model")
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrValidation))
	assert.False(t, IsCode(nil, ErrNotFound))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsCode(wrapped, ErrNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrFileSystem, "failed to save config")

	require.NotNil(t, err)
	assert.Equal(t, ErrFileSystem, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestWithSuggestion(t *testing.T) {
	err := NewProviderUnavailableError("openai").
		WithSuggestion("export OPENAI_API_KEY")

	formatted := FormatError(err)
	assert.Contains(t, formatted, "openai")
	assert.Contains(t, formatted, "export OPENAI_API_KEY")
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Run("openai key is masked", func(t *testing.T) {
		key := "sk-abcdefghijklmnopqrstuvwxyz123456"
		out := SanitizeErrorMessage("401 for key " + key)
		assert.NotContains(t, out, key)
		assert.Contains(t, out, "****")
		// The tail survives so the user can tell keys apart.
		assert.Contains(t, out, "3456")
	})

	t.Run("google key is masked", func(t *testing.T) {
		key := "AIzaSyDabcdefghijklmnopqrstuvwxyz12345"
		out := SanitizeErrorMessage("invalid key " + key)
		assert.NotContains(t, out, key)
		assert.Contains(t, out, "****")
	})

	t.Run("ordinary text passes through", func(t *testing.T) {
		assert.Equal(t, "connection refused", SanitizeErrorMessage("connection refused"))
	})

	t.Run("short sk prefix is not a key", func(t *testing.T) {
		assert.Equal(t, "task sk-12 failed", SanitizeErrorMessage("task sk-12 failed"))
	})
}

func TestFormatErrorVerboseIncludesChain(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewGenerationError("google", cause)

	verbose := FormatErrorVerbose(err)
	assert.Contains(t, verbose, "google")
	assert.Contains(t, verbose, "connection refused")
}
