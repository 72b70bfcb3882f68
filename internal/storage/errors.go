// Package storage holds what the memory and postgres repositories share.
package storage

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrForbidden     = errors.New("forbidden: not the author")
	ErrSelfFollow    = errors.New("cannot follow yourself")

	ErrInvalidCredentials = errors.New("invalid username or password")
)
