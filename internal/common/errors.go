// Package common defines sentinel errors shared by the range's repositories,
// services and HTTP handlers. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Upload errors.
	ErrorNoFile   = errors.New("no file uploaded")
	ErrorTooLarge = errors.New("file too large")
)
