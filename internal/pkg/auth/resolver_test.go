package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *Store, string, string) {
	t.Helper()
	workDir := t.TempDir()
	homeDir := t.TempDir()
	store := NewStoreWithPath(filepath.Join(homeDir, "auth.json"))
	return NewResolverWith(store, workDir, homeDir), store, workDir, homeDir
}

func TestResolvePrecedence(t *testing.T) {
	resolver, store, workDir, _ := newTestResolver(t)
	t.Setenv("OPENAI_API_KEY", "")

	// Nothing configured.
	_, source, ok := resolver.Resolve("openai")
	assert.False(t, ok)
	assert.Equal(t, SourceMissing, source)

	// A .env file is the lowest source.
	dotenv := filepath.Join(workDir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("OPENAI_API_KEY=from-dotenv\n"), 0o600))
	secret, source, ok := resolver.Resolve("openai")
	require.True(t, ok)
	assert.Equal(t, "from-dotenv", secret)
	assert.Equal(t, SourceDotEnv, source)

	// The environment shadows .env files.
	t.Setenv("OPENAI_API_KEY", "from-env")
	secret, source, ok = resolver.Resolve("openai")
	require.True(t, ok)
	assert.Equal(t, "from-env", secret)
	assert.Equal(t, SourceEnv, source)

	// The CLI store shadows everything.
	require.NoError(t, store.Set("openai", "from-store"))
	secret, source, ok = resolver.Resolve("openai")
	require.True(t, ok)
	assert.Equal(t, "from-store", secret)
	assert.Equal(t, SourceStore, source)
}

func TestResolveDotEnvSearchOrder(t *testing.T) {
	resolver, _, workDir, homeDir := newTestResolver(t)
	t.Setenv("GOOGLE_API_KEY", "")

	require.NoError(t, os.MkdirAll(filepath.Join(homeDir, ".memo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(homeDir, ".memo", ".env"),
		[]byte("GOOGLE_API_KEY=from-memo-dir\n"), 0o600))

	secret, _, ok := resolver.Resolve("google")
	require.True(t, ok)
	assert.Equal(t, "from-memo-dir", secret)

	// A .env in the working directory takes priority over home locations.
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"),
		[]byte("GOOGLE_API_KEY=from-cwd\n"), 0o600))
	secret, _, ok = resolver.Resolve("google")
	require.True(t, ok)
	assert.Equal(t, "from-cwd", secret)
}

func TestResolveUnknownProvider(t *testing.T) {
	resolver, _, _, _ := newTestResolver(t)

	_, source, ok := resolver.Resolve("anthropic")
	assert.False(t, ok)
	assert.Equal(t, SourceMissing, source)
}

func TestRemoveOnlyAffectsStore(t *testing.T) {
	resolver, store, _, _ := newTestResolver(t)
	t.Setenv("OPENAI_API_KEY", "from-env")

	require.NoError(t, store.Set("openai", "from-store"))
	require.NoError(t, store.Remove("openai"))

	secret, source, ok := resolver.Resolve("openai")
	require.True(t, ok)
	assert.Equal(t, "from-env", secret)
	assert.Equal(t, SourceEnv, source)
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "auth.json")
	store := NewStoreWithPath(path)

	_, ok := store.Get("openai")
	assert.False(t, ok)

	require.NoError(t, store.Set("openai", "sk-test"))
	secret, ok := store.Get("openai")
	require.True(t, ok)
	assert.Equal(t, "sk-test", secret)

	// The file is created with user-only permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second provider does not clobber the first.
	require.NoError(t, store.Set("google", "AIza-test"))
	secret, ok = store.Get("openai")
	require.True(t, ok)
	assert.Equal(t, "sk-test", secret)
}

func TestStoreRejectsUnknownProvider(t *testing.T) {
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "auth.json"))

	assert.Error(t, store.Set("anthropic", "key"))
	assert.Error(t, store.Remove("anthropic"))
}

func TestStoreRemoveMissingCredential(t *testing.T) {
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "auth.json"))
	assert.Error(t, store.Remove("openai"))
}

func TestStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewStoreWithPath(path)
	_, ok := store.Get("openai")
	assert.False(t, ok)

	// Writing after corruption recovers the file.
	require.NoError(t, store.Set("openai", "sk-new"))
	secret, ok := store.Get("openai")
	require.True(t, ok)
	assert.Equal(t, "sk-new", secret)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", Mask("short"))
	assert.Equal(t, "***", Mask("exactly12chr"))
	assert.Equal(t, "sk-abcde...wxyz", Mask("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestList(t *testing.T) {
	resolver, store, _, _ := newTestResolver(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	require.NoError(t, store.Set("openai", "sk-abcdefghijklmnopqrstuvwxyz"))

	statuses := resolver.List()
	require.Len(t, statuses, 2)

	byProvider := make(map[string]Status)
	for _, s := range statuses {
		byProvider[s.Provider] = s
	}
	assert.Equal(t, SourceStore, byProvider["openai"].Source)
	assert.NotEmpty(t, byProvider["openai"].Masked)
	assert.NotContains(t, byProvider["openai"].Masked, "fghijklmnop")
	assert.Equal(t, SourceMissing, byProvider["google"].Source)
	assert.Empty(t, byProvider["google"].Masked)
}
