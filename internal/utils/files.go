package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// FindSchemaFiles recursively finds all .yml and .yaml files in the
// specified directory, sorted by path.
func FindSchemaFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
