package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores artifacts under a base directory on the local
// filesystem. All operations are confined to that directory.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a filesystem backend rooted at baseDir, creating
// the directory when absent. baseURL, when set, is used for URL generation.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: base directory is required", ErrInvalidConfig)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

// Save writes the content of r to path below the base directory. Partial
// files are removed on failure.
func (s *LocalStorage) Save(ctx context.Context, path string, r io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, errors.Join(ErrSaveFailed, err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, errors.Join(ErrSaveFailed, err)
	}

	size, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, errors.Join(ErrSaveFailed, err)
	}

	return &Object{Path: path, Size: size, URL: s.URL(path)}, nil
}

// Exists reports whether a regular file is present at the path.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(absPath)
	return err == nil && info.Mode().IsRegular()
}

// Delete removes the artifact at the path; a missing file is not an error.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

// URL returns the artifact URL under the configured base, or empty.
func (s *LocalStorage) URL(path string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(path), "/")
}

// resolvePath joins path onto the base directory and verifies the result
// stays inside it.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if absPath != s.baseDir && !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, path)
	}
	return absPath, nil
}
