package sync

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandPaths resolves the sync arguments to workbook files. Each
// argument may be a file, a directory (expanded to the .xlsx files it
// contains), or a glob pattern. Results are deduplicated and sorted
// so files always process in a stable order.
func ExpandPaths(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	add := func(path string) {
		if isWorkbook(path) && !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil {
			if !info.IsDir() {
				add(path)
				continue
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					add(filepath.Join(path, entry.Name()))
				}
			}
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isWorkbook(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".xlsx") && !strings.HasPrefix(name, "~$")
}
