// Package storage persists tracker documents as JSON files in a single
// directory. Mutations take an advisory exclusive lock on the directory,
// replace whole documents via temp-file-then-rename, and validate documents
// against embedded JSON Schemas at load time.
package storage

import "errors"

var (
	// ErrPersistence is returned when a storage write or lock acquisition
	// fails. Wrapped errors carry the underlying cause.
	ErrPersistence = errors.New("storage failure")

	// ErrLockTimeout is returned when the directory lock could not be
	// acquired within the configured timeout.
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrCorruptDocument is returned when a loaded document fails schema or
	// invariant checks. Loading fails closed; nothing is repaired.
	ErrCorruptDocument = errors.New("corrupt document")
)
