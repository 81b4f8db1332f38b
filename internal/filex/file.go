// Package filex contains filesystem helpers for the upload sink.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirPerm is applied to directories EnsureDir creates. Uploads are meant to
// be world-writable, just like the legacy deployment.
const DirPerm os.FileMode = 0o777

// EnsureDir creates dir (and parents) if it is missing and returns its
// absolute path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, DirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
