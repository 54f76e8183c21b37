// Package filex contains small filesystem helpers for the CLI.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxPortraitSize caps portrait uploads.
const MaxPortraitSize = 5 << 20

var (
	ErrNotImage = errors.New("not an image")
	ErrTooLarge = errors.New("file too large")
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadImage loads an image file and sniffs its MIME type.
func ReadImage(path string, maxSize int64) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.Size() > maxSize {
		return nil, "", fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%s is %s: %w", path, contentType, ErrNotImage)
	}
	return data, contentType, nil
}
