package tokens

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultDiscoverExcludes are directories never searched for token exports.
var DefaultDiscoverExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
}

// DiscoverTokenFiles walks rootDir for token/variable export JSON files,
// applying exclude glob patterns. A file qualifies when its name ends in
// .tokens.json or is named tokens.json or variables.json.
func DiscoverTokenFiles(rootDir string, excludes []string) ([]string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	if excludes == nil {
		excludes = DefaultDiscoverExcludes
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range excludes {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if isTokenExportName(filepath.Base(path)) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func isTokenExportName(name string) bool {
	name = strings.ToLower(name)
	if strings.HasSuffix(name, ".tokens.json") {
		return true
	}
	return name == "tokens.json" || name == "variables.json"
}
