package store

import "errors"

var (
	// ErrUnauthorized means no session was resolved for the caller. Terminal:
	// the mutation never reaches storage.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the identifier matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrUpdateFailed is the generic surface for storage-level failures. The
	// underlying error is logged server-side, never returned to the caller.
	ErrUpdateFailed = errors.New("failed to update record")

	// ErrInvalidStatus rejects a status outside the allowed enum before any
	// storage call.
	ErrInvalidStatus = errors.New("invalid plan status")

	// ErrEmptyUpdate means the typed partial update set no fields.
	ErrEmptyUpdate = errors.New("no fields to update")
)
