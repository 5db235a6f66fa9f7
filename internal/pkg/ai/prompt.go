package ai

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// structureCharLimit caps how much project tree text enters the prompt.
const structureCharLimit = 500

// systemPrompt instructs the model to emit only a conventional commit
// message.
const systemPrompt = `You are an expert at writing git commit messages.

Format Requirements:
- Use Conventional Commits format: <type>(<scope>): <subject>
- Subject: imperative mood, no trailing period
- Body: optional, explain what and why (not how)
- Separate subject from body with a blank line

Output only the commit message, no explanations and no code fences.`

// userPromptTemplate renders the per-invocation context.
const userPromptTemplate = `Generate a commit message for these staged changes.

RULES:
{{- range $i, $rule := .RuleLines}}
{{inc $i}}. {{$rule}}
{{- end}}
{{if .FilesChanged}}
Files changed ({{len .FilesChanged}}, +{{.Additions}} -{{.Deletions}}):
{{- range .FilesChanged}}
- {{.}}
{{- end}}
{{end}}
{{- if .HistoryExamples}}
Recent commit subjects in this repository (match their conventions):
{{- range .HistoryExamples}}
- {{.}}
{{- end}}
{{end}}
{{- if .Structure}}
Project structure:
{{.Structure}}
{{end}}
Diff:
{{.Diff}}`

type promptData struct {
	RuleLines       []string
	FilesChanged    []string
	Additions       int
	Deletions       int
	HistoryExamples []string
	Structure       string
	Diff            string
}

var userTemplate = template.Must(template.New("userPrompt").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(userPromptTemplate))

// SystemPrompt returns the fixed system instruction.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the user prompt deterministically from the
// commit context. Identical input yields identical prompt text.
func BuildUserPrompt(commitCtx *CommitContext) (string, error) {
	data := promptData{
		RuleLines:       ruleLines(commitCtx),
		FilesChanged:    commitCtx.Stats.FilesChanged,
		Additions:       commitCtx.Stats.Additions,
		Deletions:       commitCtx.Stats.Deletions,
		HistoryExamples: commitCtx.History.Examples,
		Structure:       truncate(commitCtx.Structure, structureCharLimit),
		Diff:            commitCtx.Diff,
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ruleLines turns the configured commit rules into numbered instructions.
func ruleLines(commitCtx *CommitContext) []string {
	rules := commitCtx.Rules
	lines := []string{
		fmt.Sprintf("Keep the subject line at or under %d characters.", rules.MaxSubjectLength),
	}

	if len(rules.AllowedTypes) > 0 {
		lines = append(lines, "Use one of these commit types: "+strings.Join(rules.AllowedTypes, ", ")+".")
	}
	if rules.RequireScope {
		lines = append(lines, "Always include a scope in parentheses after the type.")
	}
	if commitCtx.Stats.IsLargeChange() {
		lines = append(lines, "This is a large change; summarize the overall intent rather than listing every file.")
	}
	if dominant, ok := commitCtx.History.DominantType(); ok {
		lines = append(lines, fmt.Sprintf("This repository most often uses the %q type; prefer it when it fits.", dominant))
	}
	if scopes := frequentScopes(commitCtx.History.ScopeFrequency); len(scopes) > 0 {
		lines = append(lines, "Common scopes in this repository: "+strings.Join(scopes, ", ")+".")
	}
	lines = append(lines, rules.CustomRules...)
	return lines
}

// frequentScopes returns known scopes in deterministic order.
func frequentScopes(freq map[string]int) []string {
	scopes := make([]string, 0, len(freq))
	for scope := range freq {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool {
		if freq[scopes[i]] != freq[scopes[j]] {
			return freq[scopes[i]] > freq[scopes[j]]
		}
		return scopes[i] < scopes[j]
	})
	if len(scopes) > 3 {
		scopes = scopes[:3]
	}
	return scopes
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n..."
}
