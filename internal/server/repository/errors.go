package repository

import "errors"

var (
	// ErrNotFound indicates a record absent or not owned by the requester.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername indicates a registration conflict.
	ErrDuplicateUsername = errors.New("username already registered")
)
