package storage

import "errors"

var (
	// ErrInvalidConfig indicates missing or contradictory backend settings.
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// ErrPathTraversal indicates a path that would escape the storage base.
	ErrPathTraversal = errors.New("storage: path escapes storage base")

	// ErrSaveFailed wraps backend write failures.
	ErrSaveFailed = errors.New("storage: failed to save artifact")

	// ErrDeleteFailed wraps backend delete failures.
	ErrDeleteFailed = errors.New("storage: failed to delete artifact")
)
