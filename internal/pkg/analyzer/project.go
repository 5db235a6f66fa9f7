package analyzer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const maxStructureDepth = 2

// ProjectStructure renders a shallow tree of the project for prompt
// context. Hidden files and common vendored directories are skipped.
func ProjectStructure(root string) string {
	var sb strings.Builder
	walk(&sb, root, "", 0)
	return strings.TrimRight(sb.String(), "\n")
}

func walk(sb *strings.Builder, dir, indent string, depth int) {
	if depth > maxStructureDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	names := make([]string, 0, len(entries))
	dirs := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if skipEntry(name) {
			continue
		}
		names = append(names, name)
		dirs[name] = entry.IsDir()
	}
	sort.Strings(names)

	for _, name := range names {
		if dirs[name] {
			sb.WriteString(indent + name + "/\n")
			walk(sb, filepath.Join(dir, name), indent+"  ", depth+1)
		} else {
			sb.WriteString(indent + name + "\n")
		}
	}
}

func skipEntry(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "dist", "build", "target":
		return true
	}
	return false
}
