package auth

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Source identifies where a resolved credential came from.
type Source string

const (
	SourceStore   Source = "cli store"
	SourceEnv     Source = "environment"
	SourceDotEnv  Source = "dotenv file"
	SourceMissing Source = "not set"
)

// envVarNames maps provider names to the environment variable holding
// their API key.
var envVarNames = map[string]string{
	"openai": "OPENAI_API_KEY",
	"google": "GOOGLE_API_KEY",
}

// EnvVarName returns the environment variable consulted for the provider.
func EnvVarName(provider string) string {
	return envVarNames[provider]
}

// Resolver resolves provider credentials with a fixed precedence:
// the CLI store, then environment variables, then .env files.
type Resolver struct {
	store   *Store
	workDir string
	homeDir string
}

// NewResolver creates a Resolver using the default store and the current
// working directory.
func NewResolver() (*Resolver, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	return &Resolver{store: store, workDir: workDir, homeDir: homeDir}, nil
}

// NewResolverWith creates a Resolver with explicit dependencies.
func NewResolverWith(store *Store, workDir, homeDir string) *Resolver {
	return &Resolver{store: store, workDir: workDir, homeDir: homeDir}
}

// Store exposes the underlying credential store.
func (r *Resolver) Store() *Store {
	return r.store
}

// Resolve returns the credential for the provider together with its source.
// Higher-priority sources shadow lower ones.
func (r *Resolver) Resolve(provider string) (string, Source, bool) {
	if secret, ok := r.store.Get(provider); ok {
		return secret, SourceStore, true
	}

	envVar := envVarNames[provider]
	if envVar == "" {
		return "", SourceMissing, false
	}
	if secret := os.Getenv(envVar); secret != "" {
		return secret, SourceEnv, true
	}

	if secret, ok := r.lookupDotEnv(envVar); ok {
		return secret, SourceDotEnv, true
	}
	return "", SourceMissing, false
}

// lookupDotEnv searches .env files in precedence order without mutating
// the process environment.
func (r *Resolver) lookupDotEnv(envVar string) (string, bool) {
	var candidates []string
	if r.workDir != "" {
		candidates = append(candidates, filepath.Join(r.workDir, ".env"))
	}
	if r.homeDir != "" {
		candidates = append(candidates,
			filepath.Join(r.homeDir, ".env"),
			filepath.Join(r.homeDir, ".memo", ".env"),
		)
	}

	for _, path := range candidates {
		values, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		if secret, ok := values[envVar]; ok && secret != "" {
			return secret, true
		}
	}
	return "", false
}

// Status describes how a provider's credential resolves right now.
type Status struct {
	Provider string
	Source   Source
	Masked   string
}

// List reports the resolution status of every known provider.
func (r *Resolver) List() []Status {
	statuses := make([]Status, 0, len(Providers))
	for _, provider := range Providers {
		secret, source, ok := r.Resolve(provider)
		status := Status{Provider: provider, Source: source}
		if ok {
			status.Masked = Mask(secret)
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Mask hides the middle of a secret, keeping enough of the ends to let
// users recognize which key is configured.
func Mask(secret string) string {
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:8] + "..." + secret[len(secret)-4:]
}
