package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/internal/server.go b/internal/server.go
index 1234567..89abcde 100644
--- a/internal/server.go
+++ b/internal/server.go
@@ -10,7 +10,9 @@ func main() {
-	old line
+	new line
+	another new line
diff --git a/README.md b/README.md
new file mode 100644
index 0000000..f00ba4
--- /dev/null
+++ b/README.md
@@ -0,0 +1,2 @@
+# Title
+Body
diff --git a/legacy.go b/legacy.go
deleted file mode 100644
index f00ba4..0000000
--- a/legacy.go
+++ /dev/null
@@ -1,1 +0,0 @@
-gone
`

func TestAnalyzeDiff(t *testing.T) {
	stats := AnalyzeDiff(sampleDiff)

	assert.Equal(t, []string{"internal/server.go", "README.md", "legacy.go"}, stats.FilesChanged)
	assert.Equal(t, 4, stats.Additions)
	assert.Equal(t, 2, stats.Deletions)
	assert.Equal(t, 1, stats.NewFiles)
	assert.Equal(t, 1, stats.DeletedFiles)
	assert.False(t, stats.IsLargeChange())
}

func TestAnalyzeDiffEmpty(t *testing.T) {
	stats := AnalyzeDiff("")
	assert.Empty(t, stats.FilesChanged)
	assert.Zero(t, stats.Additions)
	assert.Zero(t, stats.Deletions)
}

func TestIsLargeChange(t *testing.T) {
	var manyLines strings.Builder
	manyLines.WriteString("diff --git a/big.go b/big.go\n")
	for i := 0; i < 60; i++ {
		manyLines.WriteString("+line\n")
	}
	assert.True(t, AnalyzeDiff(manyLines.String()).IsLargeChange())

	var manyFiles strings.Builder
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		manyFiles.WriteString("diff --git a/" + name + ".go b/" + name + ".go\n")
	}
	assert.True(t, AnalyzeDiff(manyFiles.String()).IsLargeChange())
}

func TestAnalyzeHistory(t *testing.T) {
	subjects := []string{
		"feat(config): add layered merge",
		"fix(config): handle missing file",
		"feat(auth): add credential store",
		"Merge branch 'main' into dev",
		"update readme",
	}

	insights := AnalyzeHistory(subjects)

	assert.True(t, insights.HasConventions())
	assert.Equal(t, 2, insights.TypeFrequency["feat"])
	assert.Equal(t, 1, insights.TypeFrequency["fix"])
	assert.Equal(t, 2, insights.ScopeFrequency["config"])
	assert.Equal(t, 1, insights.ScopeFrequency["auth"])

	// Merge commits are excluded everywhere.
	assert.NotContains(t, insights.Examples, "Merge branch 'main' into dev")
	assert.Len(t, insights.Examples, 4)
	assert.Positive(t, insights.AverageLength)

	dominant, ok := insights.DominantType()
	require.True(t, ok)
	assert.Equal(t, "feat", dominant)
}

func TestAnalyzeHistoryNoConventions(t *testing.T) {
	insights := AnalyzeHistory([]string{"update stuff", "more changes"})

	assert.False(t, insights.HasConventions())
	_, ok := insights.DominantType()
	assert.False(t, ok)
}

func TestAnalyzeHistoryCapsExamples(t *testing.T) {
	subjects := make([]string, 10)
	for i := range subjects {
		subjects[i] = "feat: change number " + string(rune('a'+i))
	}
	insights := AnalyzeHistory(subjects)
	assert.Len(t, insights.Examples, 5)
}

func TestProjectStructure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "internal", "pkg", "deep", "deeper"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "internal", "pkg", "x.go"), nil, 0o644))

	tree := ProjectStructure(root)

	assert.Contains(t, tree, "main.go")
	assert.Contains(t, tree, "internal/")
	assert.Contains(t, tree, "pkg/")
	assert.NotContains(t, tree, ".git")
	assert.NotContains(t, tree, ".hidden")
	assert.NotContains(t, tree, "node_modules")
	// Depth is bounded, so deeply nested directories stay out.
	assert.NotContains(t, tree, "deeper")
}
