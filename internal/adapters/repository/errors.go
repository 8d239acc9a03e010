package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrDuplicate means the dedupe bucket already holds an equal or
	// better score and the write was skipped.
	ErrDuplicate = errors.New("score already recorded for bucket")

	// ErrNotFound means the API key resolved to no user row.
	ErrNotFound = errors.New("user not found")
)
