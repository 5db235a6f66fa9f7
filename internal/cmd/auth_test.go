package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and captures output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

// isolateHome points credential and config lookups at a temp directory.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func TestAuthSetAcceptsPositionalKey(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "auth", "set", "openai", "sk-positional-key-value-1234")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored key for openai")

	out, err = runCommand(t, "auth", "show", "openai")
	require.NoError(t, err)
	assert.Contains(t, out, "cli store")
	assert.NotContains(t, out, "sk-positional-key-value-1234")
}

func TestAuthSetRejectsEmptyKey(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "auth", "set", "openai", "   ")
	require.Error(t, err)
}

func TestAuthShowWithoutProviderListsAll(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "auth", "set", "google", "AIza-some-long-key-value-5678")
	require.NoError(t, err)

	out, err := runCommand(t, "auth", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "google")
	assert.Contains(t, out, "not set")
	assert.Contains(t, out, "cli store")
}
