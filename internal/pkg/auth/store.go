// Package auth provides credential storage and resolution for AI providers.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

// Providers lists the providers Memo knows how to authenticate against.
var Providers = []string{"openai", "google"}

// IsKnownProvider reports whether the provider name is supported.
func IsKnownProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

// storeFile is the on-disk shape of the CLI-managed credential store.
type storeFile struct {
	Providers map[string]providerRecord `json:"providers"`
}

type providerRecord struct {
	APIKey string `json:"api_key"`
}

// Store is the CLI-managed credential store, backed by a JSON file at
// ~/.local/share/memo/auth.json with user-only permissions.
type Store struct {
	filePath string
	mu       sync.Mutex
}

// NewStore creates a Store at the default location.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFileSystem, "failed to resolve home directory")
	}
	return NewStoreWithPath(filepath.Join(homeDir, ".local", "share", "memo", "auth.json")), nil
}

// NewStoreWithPath creates a Store backed by the given file.
func NewStoreWithPath(filePath string) *Store {
	return &Store{filePath: filePath}
}

// Set persists a secret for the provider, overwriting any existing value.
func (s *Store) Set(provider, secret string) error {
	if !IsKnownProvider(provider) {
		return apperrors.NewValidationError("unknown provider: " + provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]providerRecord)
	}
	cfg.Providers[provider] = providerRecord{APIKey: secret}
	return s.save(cfg)
}

// Get returns the stored secret for the provider, if any.
func (s *Store) Get(provider string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return "", false
	}
	rec, ok := cfg.Providers[provider]
	if !ok || rec.APIKey == "" {
		return "", false
	}
	return rec.APIKey, true
}

// Remove deletes the stored secret for the provider. It does not affect
// environment variables or .env files.
func (s *Store) Remove(provider string) error {
	if !IsKnownProvider(provider) {
		return apperrors.NewValidationError("unknown provider: " + provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := cfg.Providers[provider]; !ok {
		return apperrors.NewNotFoundError("credential for " + provider)
	}
	delete(cfg.Providers, provider)
	return s.save(cfg)
}

// load reads the store file. A missing file yields an empty store; a
// corrupt file is reported but treated as empty so auth commands stay usable.
func (s *Store) load() (*storeFile, error) {
	cfg := &storeFile{Providers: make(map[string]providerRecord)}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.NewFileSystemError(s.filePath, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		apperrors.Warn("credential store at %s is corrupt, treating as empty: %v", s.filePath, err)
		return &storeFile{Providers: make(map[string]providerRecord)}, nil
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]providerRecord)
	}
	return cfg, nil
}

// save writes the store file with user-only permissions.
func (s *Store) save(cfg *storeFile) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewFileSystemError(dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystem, "failed to encode credential store")
	}
	if err := os.WriteFile(s.filePath, append(data, '\n'), 0o600); err != nil {
		return apperrors.NewFileSystemError(s.filePath, err)
	}
	return nil
}
