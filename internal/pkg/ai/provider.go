// Package ai builds prompts and talks to commit message providers.
package ai

import "context"

// Provider generates a commit message from a fully-rendered prompt.
type Provider interface {
	// GenerateMessage performs a single request, with no internal retry.
	GenerateMessage(ctx context.Context, prompt string) (string, error)

	// Name identifies the backing service, such as "openai" or "google".
	Name() string

	// Model returns the model identifier the provider was created with.
	Model() string
}
