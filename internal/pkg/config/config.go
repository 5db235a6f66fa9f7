// Package config provides layered configuration management for Memo.
//
// Two JSON files participate in every run: a project-scoped .memo.json in
// the working directory and a user-scoped .memo.json in the home directory.
// Values are resolved key-by-key: project over user over built-in defaults.
package config

// ProjectFileName is the per-repository configuration file name.
const ProjectFileName = ".memo.json"

// UserFileName is the user-level configuration file name (in $HOME).
const UserFileName = ".memo.json"

// Config represents the fully resolved (effective) Memo configuration.
type Config struct {
	DefaultModel            string      `mapstructure:"default_model" json:"default_model"`
	InteractiveMode         bool        `mapstructure:"interactive_mode" json:"interactive_mode"`
	CommitRules             CommitRules `mapstructure:"commit_rules" json:"commit_rules"`
	ProjectStructureContext bool        `mapstructure:"project_structure_context" json:"project_structure_context"`
	CommitHistoryAnalysis   bool        `mapstructure:"commit_history_analysis" json:"commit_history_analysis"`
}

// CommitRules contains the commit message rules injected into the prompt.
// They are advisory to the model, never enforced on the generated text.
type CommitRules struct {
	MaxSubjectLength int      `mapstructure:"max_subject_length" json:"max_subject_length"`
	RequireScope     bool     `mapstructure:"require_scope" json:"require_scope"`
	AllowedTypes     []string `mapstructure:"allowed_types" json:"allowed_types"`
	CustomRules      []string `mapstructure:"custom_rules" json:"custom_rules"`
}

// Defaults returns the built-in default configuration as a nested map.
// This map defines the schema: any dotted path not present here is rejected
// by Get/Set/Reset.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"default_model":    "gemini-2.0-flash",
		"interactive_mode": true,
		"commit_rules": map[string]interface{}{
			"max_subject_length": 72,
			"require_scope":      false,
			"allowed_types": []string{
				"feat", "fix", "docs", "style", "refactor",
				"perf", "test", "build", "ci", "chore", "revert",
			},
			"custom_rules": []string{},
		},
		"project_structure_context": true,
		"commit_history_analysis":   true,
	}
}

// leafDefaults maps every dotted leaf path to its default value.
func leafDefaults() map[string]interface{} {
	leaves := make(map[string]interface{})
	flattenDefaults("", Defaults(), leaves)
	return leaves
}

// flattenDefaults walks a nested defaults map and records leaf paths.
func flattenDefaults(prefix string, m map[string]interface{}, out map[string]interface{}) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenDefaults(path, nested, out)
			continue
		}
		out[path] = value
	}
}

// sectionPaths returns the dotted paths that name objects rather than leaves.
func sectionPaths() map[string]bool {
	sections := make(map[string]bool)
	collectSections("", Defaults(), sections)
	return sections
}

func collectSections(prefix string, m map[string]interface{}, out map[string]bool) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			out[path] = true
			collectSections(path, nested, out)
		}
	}
}
