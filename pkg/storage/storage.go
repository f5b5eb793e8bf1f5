// Package storage persists finished report artifacts.
//
// The pipeline writes each compiled report through a Storage backend: the
// local filesystem for on-prem runs, S3 for hosted ones. Backends take an
// io.Reader and a relative path; path traversal outside the configured base
// is rejected.
package storage

import (
	"context"
	"io"
	"mime"
	"path/filepath"
)

// Object describes a stored artifact.
type Object struct {
	// Path is the backend-relative path of the artifact.
	Path string
	// Size is the stored size in bytes.
	Size int64
	// URL is the public or file URL of the artifact, empty when the backend
	// has no URL base configured.
	URL string
}

// Storage is the artifact persistence interface shared by backends.
type Storage interface {
	// Save stores the content of r at the given relative path, creating
	// intermediate directories or key prefixes as needed.
	Save(ctx context.Context, path string, r io.Reader) (*Object, error)
	// Exists reports whether an artifact is present at the path.
	Exists(ctx context.Context, path string) bool
	// Delete removes the artifact at the path. Deleting a missing artifact
	// is not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for a path, or empty when unconfigured.
	URL(path string) string
}

// contentType guesses a MIME type from the artifact extension; reports are
// PDFs or LaTeX sources, anything else falls back to octet-stream.
func contentType(path string) string {
	switch ext := filepath.Ext(path); ext {
	case ".pdf":
		return "application/pdf"
	case ".tex":
		return "application/x-tex"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
