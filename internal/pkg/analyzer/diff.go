// Package analyzer derives commit context from diffs, history, and the
// project tree.
package analyzer

import "strings"

// DiffStats summarizes a staged diff.
type DiffStats struct {
	FilesChanged []string
	Additions    int
	Deletions    int
	NewFiles     int
	DeletedFiles int
}

// IsLargeChange reports whether the change is big enough that the commit
// body should summarize it rather than enumerate details.
func (s DiffStats) IsLargeChange() bool {
	return s.Additions+s.Deletions > 50 || len(s.FilesChanged) > 5
}

// AnalyzeDiff extracts file names and line counts from unified diff text.
func AnalyzeDiff(diff string) DiffStats {
	var stats DiffStats
	seen := make(map[string]bool)

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			if name := parseDiffHeader(line); name != "" && !seen[name] {
				seen[name] = true
				stats.FilesChanged = append(stats.FilesChanged, name)
			}
		case strings.HasPrefix(line, "new file mode"):
			stats.NewFiles++
		case strings.HasPrefix(line, "deleted file mode"):
			stats.DeletedFiles++
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stats.Additions++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stats.Deletions++
		}
	}
	return stats
}

// parseDiffHeader extracts the b/ path from a "diff --git a/x b/x" line.
func parseDiffHeader(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return ""
	}
	return strings.TrimPrefix(fields[3], "b/")
}
