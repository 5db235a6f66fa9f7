package analyzer

import (
	"regexp"
	"strings"
)

// conventionalPattern matches "type(scope)!: subject" with optional scope
// and breaking-change marker.
var conventionalPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)

// HistoryInsights summarizes recent commit subjects so generated messages
// can follow the project's existing conventions.
type HistoryInsights struct {
	TypeFrequency  map[string]int
	ScopeFrequency map[string]int
	AverageLength  int
	Examples       []string
}

// HasConventions reports whether any subject followed the conventional
// commit format.
func (h HistoryInsights) HasConventions() bool {
	return len(h.TypeFrequency) > 0
}

// AnalyzeHistory inspects commit subjects, newest first. Merge commits are
// skipped since they do not reflect the project's authored style.
func AnalyzeHistory(subjects []string) HistoryInsights {
	insights := HistoryInsights{
		TypeFrequency:  make(map[string]int),
		ScopeFrequency: make(map[string]int),
	}

	totalLength := 0
	counted := 0
	for _, subject := range subjects {
		subject = strings.TrimSpace(subject)
		if subject == "" || strings.HasPrefix(subject, "Merge ") {
			continue
		}

		counted++
		totalLength += len(subject)
		if len(insights.Examples) < 5 {
			insights.Examples = append(insights.Examples, subject)
		}

		m := conventionalPattern.FindStringSubmatch(subject)
		if m == nil {
			continue
		}
		insights.TypeFrequency[m[1]]++
		if m[2] != "" {
			insights.ScopeFrequency[m[2]]++
		}
	}

	if counted > 0 {
		insights.AverageLength = totalLength / counted
	}
	return insights
}

// DominantType returns the most frequent commit type, if one exists.
func (h HistoryInsights) DominantType() (string, bool) {
	best, bestCount := "", 0
	for t, count := range h.TypeFrequency {
		if count > bestCount || (count == bestCount && t < best) {
			best, bestCount = t, count
		}
	}
	return best, bestCount > 0
}
