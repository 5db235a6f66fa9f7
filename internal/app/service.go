// Package app orchestrates the commit message generation workflow.
package app

import (
	"context"

	"github.com/memocli/memo/internal/pkg/ai"
	"github.com/memocli/memo/internal/pkg/auth"
	"github.com/memocli/memo/internal/pkg/config"
	apperrors "github.com/memocli/memo/internal/pkg/errors"
	"github.com/memocli/memo/internal/pkg/git"
	"github.com/memocli/memo/internal/pkg/ui"
)

// CredentialResolver resolves API keys for providers.
type CredentialResolver interface {
	Resolve(provider string) (string, auth.Source, bool)
}

// ProviderFactory creates a Provider for a model and credential.
type ProviderFactory func(model, apiKey string) (ai.Provider, error)

// GenerateOptions carries the per-invocation flags.
type GenerateOptions struct {
	// Model overrides the configured default model when non-empty.
	Model string

	// NonInteractive prints the message instead of prompting.
	NonInteractive bool

	// ShowPrompt prints the rendered prompt before calling the provider.
	ShowPrompt bool
}

// Service runs the generate workflow.
type Service struct {
	git      git.Client
	resolver CredentialResolver
	factory  ProviderFactory
	ui       ui.Manager
	cfg      config.Config
}

// NewService creates a Service with explicit dependencies.
func NewService(gitClient git.Client, resolver CredentialResolver, factory ProviderFactory, uiManager ui.Manager, cfg config.Config) *Service {
	return &Service{
		git:      gitClient,
		resolver: resolver,
		factory:  factory,
		ui:       uiManager,
		cfg:      cfg,
	}
}

// Generate runs the full workflow: verify staged changes, resolve the
// credential, build the prompt, call the provider, then drive the
// accept/regenerate/edit/deny loop.
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) error {
	if !s.git.IsRepository(ctx) {
		return apperrors.NewValidationError("not a git repository (run memo inside a repository)")
	}

	staged, err := s.git.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return apperrors.NewNoStagedChangesError()
	}

	model := opts.Model
	if model == "" {
		model = s.cfg.DefaultModel
	}

	provider, err := s.providerFor(model)
	if err != nil {
		return err
	}

	commitCtx, err := ai.NewContextBuilder(s.git, s.cfg).Build(ctx)
	if err != nil {
		return err
	}

	prompt, err := ai.BuildUserPrompt(commitCtx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrGeneration, "failed to render prompt")
	}
	if opts.ShowPrompt {
		s.ui.ShowWarning("Prompt sent to the model:")
		s.ui.DisplayMessage(prompt)
	}

	message, err := s.generateWithSpinner(ctx, provider, prompt)
	if err != nil {
		return err
	}

	interactive := s.cfg.InteractiveMode && !opts.NonInteractive
	if !interactive {
		s.ui.DisplayMessage(message)
		return nil
	}

	return s.interactLoop(ctx, provider, prompt, message)
}

// interactLoop drives the accept/regenerate/edit/deny cycle until the
// user commits or walks away.
func (s *Service) interactLoop(ctx context.Context, provider ai.Provider, prompt, message string) error {
	for {
		s.ui.DisplayMessage(message)

		action, err := s.ui.PromptAction()
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrValidation, "failed to read choice")
		}
		apperrors.Debug("user chose %s", action)

		switch action {
		case ui.ActionAccept:
			if err := s.git.Commit(ctx, message); err != nil {
				return err
			}
			s.ui.ShowSuccess("Committed.")
			return nil

		case ui.ActionEdit:
			if err := s.git.CommitWithEditor(ctx, message); err != nil {
				// Saving an empty message aborts the commit. That is a
				// deliberate user decision, not a failure.
				s.ui.ShowWarning("Commit aborted in editor; nothing was committed.")
				return nil
			}
			s.ui.ShowSuccess("Committed.")
			return nil

		case ui.ActionRegenerate:
			nextModel, err := s.ui.PromptModel(ai.KnownModels, provider.Model())
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrValidation, "failed to read model choice")
			}
			if nextModel != provider.Model() {
				provider, err = s.providerFor(nextModel)
				if err != nil {
					s.ui.ShowError(err)
					continue
				}
			}
			message, err = s.generateWithSpinner(ctx, provider, prompt)
			if err != nil {
				return err
			}

		case ui.ActionDeny:
			s.ui.ShowWarning("Message discarded; nothing was committed.")
			return nil
		}
	}
}

// providerFor resolves the credential for the model's provider and
// constructs it, failing before any network work when the key is missing.
func (s *Service) providerFor(model string) (ai.Provider, error) {
	providerName, err := ai.ProviderForModel(model)
	if err != nil {
		return nil, err
	}

	apiKey, source, ok := s.resolver.Resolve(providerName)
	if !ok {
		return nil, apperrors.NewProviderUnavailableError(providerName).
			WithSuggestion("Run 'memo auth set " + providerName +
				"' or export " + auth.EnvVarName(providerName))
	}
	apperrors.Debug("using %s credential from %s", providerName, source)

	return s.factory(model, apiKey)
}

func (s *Service) generateWithSpinner(ctx context.Context, provider ai.Provider, prompt string) (string, error) {
	spin := s.ui.ShowSpinner("Generating commit message with " + provider.Model() + "...")
	spin.Start()
	message, err := provider.GenerateMessage(ctx, prompt)
	spin.Stop()
	return message, err
}
