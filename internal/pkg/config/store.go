package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

// Store resolves configuration from the project file, the user file, and
// built-in defaults. It is constructed once per invocation; Load reads both
// layers fresh from disk.
type Store struct {
	projectPath string
	userPath    string

	v        *viper.Viper
	leaves   map[string]interface{}
	sections map[string]bool
}

// NewStore creates a Store using the conventional file locations:
// ./.memo.json for the project layer and ~/.memo.json for the user layer.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFileSystem, "failed to resolve home directory")
	}
	return NewStoreWithPaths(ProjectFileName, filepath.Join(homeDir, UserFileName)), nil
}

// NewStoreWithPaths creates a Store with explicit layer file paths.
func NewStoreWithPaths(projectPath, userPath string) *Store {
	return &Store{
		projectPath: projectPath,
		userPath:    userPath,
		leaves:      leafDefaults(),
		sections:    sectionPaths(),
	}
}

// Load reads both configuration layers and builds the effective view.
// A malformed or unreadable layer degrades to an empty layer with a warning;
// Load itself never fails on bad layer content.
func (s *Store) Load() error {
	v := viper.New()
	for path, def := range s.leaves {
		v.SetDefault(path, def)
	}

	if user := s.readLayer(s.userPath); len(user) > 0 {
		if err := v.MergeConfigMap(user); err != nil {
			return apperrors.Wrap(err, apperrors.ErrConfig, "failed to merge user config")
		}
	}
	if project := s.readLayer(s.projectPath); len(project) > 0 {
		if err := v.MergeConfigMap(project); err != nil {
			return apperrors.Wrap(err, apperrors.ErrConfig, "failed to merge project config")
		}
	}

	s.v = v
	s.sanitize()
	return nil
}

// readLayer reads a single JSON layer into a map. Missing files yield an
// empty layer silently; malformed files yield an empty layer with a warning.
func (s *Store) readLayer(path string) map[string]interface{} {
	lv := viper.New()
	lv.SetConfigFile(path)
	lv.SetConfigType("json")

	if err := lv.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			apperrors.Warn("%v; using defaults for this layer", apperrors.NewConfigError(path, err))
		}
		return nil
	}
	return lv.AllSettings()
}

// sanitize type-checks every known leaf against its default. A value that
// cannot be coerced to the default's type reverts to the default with a
// warning, so one bad key never poisons the rest of the configuration.
func (s *Store) sanitize() {
	for path, def := range s.leaves {
		raw := s.v.Get(path)
		coerced, err := coerceToDefaultType(raw, def)
		if err == nil {
			err = validateLeaf(path, coerced)
		}
		if err != nil {
			apperrors.Warn("config key %s has invalid value %v, reverting to default %v", path, raw, def)
			s.v.Set(path, def)
			continue
		}
		s.v.Set(path, coerced)
	}
}

// Effective returns the fully resolved configuration.
func (s *Store) Effective() (*Config, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfig, "failed to decode effective config")
	}
	return &cfg, nil
}

// EffectiveJSON renders the effective configuration as formatted JSON.
func (s *Store) EffectiveJSON() (string, error) {
	cfg, err := s.Effective()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrConfig, "failed to render config")
	}
	return string(data), nil
}

// Get resolves a dot-separated key path against the effective configuration.
// Paths absent from the default schema are rejected with a NotFound error.
func (s *Store) Get(path string) (interface{}, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	if !s.knownPath(path) {
		return nil, apperrors.NewNotFoundError(path)
	}
	return s.v.Get(path), nil
}

// Set writes a value to the project file if one exists in the working
// directory, otherwise to the user file. The string value is coerced to the
// type of the schema default; a mismatch is a validation error.
func (s *Store) Set(path string, value string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if s.sections[path] {
		return apperrors.NewValidationError(fmt.Sprintf("cannot set object key %q directly; set one of its fields", path))
	}
	def, ok := s.leaves[path]
	if !ok {
		return apperrors.NewNotFoundError(path)
	}

	coerced, err := coerceString(value, def)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid value %q for %s: %v", value, path, err))
	}
	if err := validateLeaf(path, coerced); err != nil {
		return err
	}

	target := s.targetPath()
	layer := s.readLayer(target)
	if layer == nil {
		layer = make(map[string]interface{})
	}
	setNested(layer, strings.Split(path, "."), coerced)
	if err := writeLayer(target, layer); err != nil {
		return err
	}
	return s.Load()
}

// Reset deletes the key from the target file so subsequent reads fall
// through to the lower layer or the built-in default.
func (s *Store) Reset(path string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if !s.knownPath(path) {
		return apperrors.NewNotFoundError(path)
	}

	target := s.targetPath()
	layer := s.readLayer(target)
	if layer == nil {
		return s.Load()
	}
	deleteNested(layer, strings.Split(path, "."))
	if err := writeLayer(target, layer); err != nil {
		return err
	}
	return s.Load()
}

// ResetAll removes the target file entirely.
func (s *Store) ResetAll() error {
	target := s.targetPath()
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return apperrors.NewFileSystemError(target, err)
	}
	return s.Load()
}

// ProjectFileExists reports whether a project-level config file is present.
func (s *Store) ProjectFileExists() bool {
	_, err := os.Stat(s.projectPath)
	return err == nil
}

// TargetPath returns the file that Set and Reset operate on.
func (s *Store) TargetPath() string {
	return s.targetPath()
}

func (s *Store) targetPath() string {
	if s.ProjectFileExists() {
		return s.projectPath
	}
	return s.userPath
}

func (s *Store) ensureLoaded() error {
	if s.v != nil {
		return nil
	}
	return s.Load()
}

// knownPath reports whether the dotted path exists in the default schema,
// either as a leaf or as a section.
func (s *Store) knownPath(path string) bool {
	if _, ok := s.leaves[path]; ok {
		return true
	}
	return s.sections[path]
}

// coerceString converts a CLI-supplied string to the type of the default.
func coerceString(value string, def interface{}) (interface{}, error) {
	switch def.(type) {
	case bool:
		return cast.ToBoolE(value)
	case int:
		return cast.ToIntE(value)
	case string:
		return value, nil
	case []string:
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("unsupported config type %T", def)
	}
}

// coerceToDefaultType converts a loaded value to the type of the default.
// JSON decoding produces float64 for numbers and []interface{} for arrays,
// so loaded layers always pass through here before use.
func coerceToDefaultType(value interface{}, def interface{}) (interface{}, error) {
	switch def.(type) {
	case bool:
		return cast.ToBoolE(value)
	case int:
		return cast.ToIntE(value)
	case string:
		return cast.ToStringE(value)
	case []string:
		return cast.ToStringSliceE(value)
	default:
		return nil, fmt.Errorf("unsupported config type %T", def)
	}
}

// validateLeaf applies per-key constraints beyond plain type checks.
func validateLeaf(path string, value interface{}) error {
	if path == "commit_rules.max_subject_length" {
		if n, ok := value.(int); ok && n <= 0 {
			return apperrors.NewValidationError("commit_rules.max_subject_length must be a positive integer")
		}
	}
	return nil
}

// setNested writes a value into a nested map, creating intermediate maps.
func setNested(m map[string]interface{}, keys []string, value interface{}) {
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			m[key] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}

// deleteNested removes a key from a nested map if present.
func deleteNested(m map[string]interface{}, keys []string) {
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]interface{})
		if !ok {
			return
		}
		m = next
	}
	delete(m, keys[len(keys)-1])
}

// writeLayer persists a layer map as indented JSON.
// Viper cannot delete keys from a file, so layer writes go through
// encoding/json directly.
func writeLayer(path string, layer map[string]interface{}) error {
	data, err := json.MarshalIndent(layer, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrConfig, "failed to encode config")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.NewFileSystemError(path, err)
	}
	return nil
}
