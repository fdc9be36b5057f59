// Package common defines sentinel errors shared by the directory, session and
// favorites layers of Montflix. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorCorrupted = errors.New("corrupted slot")

	// Session errors.
	ErrorNotAuthenticated = errors.New("not authenticated")
	ErrorForbidden        = errors.New("forbidden")

	// Input validation errors.
	ErrorInvalidEmail   = errors.New("invalid email")
	ErrorUnknownItem    = errors.New("unknown catalog item")
	ErrorAvatarTooLarge = errors.New("avatar too large")
)
