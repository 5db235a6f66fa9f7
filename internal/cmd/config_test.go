package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", formatValue("gemini-2.0-flash"))
	assert.Equal(t, "72", formatValue(72))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "feat, fix, chore", formatValue([]string{"feat", "fix", "chore"}))

	rendered := formatValue(map[string]interface{}{
		"max_subject_length": 72,
		"require_scope":      false,
	})
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(rendered), &parsed))
	assert.EqualValues(t, 72, parsed["max_subject_length"])
}

func TestConfigShowSectionRendersJSON(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "config", "show", "commit_rules")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed, "max_subject_length")
	assert.Contains(t, parsed, "allowed_types")
	assert.NotContains(t, out, "map[")
}

func TestConfigShowLeafValue(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "config", "show", "default_model")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash\n", out)
}
