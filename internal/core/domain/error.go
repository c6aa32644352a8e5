package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")
	ErrValidation = errors.New("missing or malformed field")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrBadStatus = errors.New("status must be one of ONGOING, COMPLETED, CANCELLED")

	// * Invariant violations. These signal a bug, not a caller mistake.
	ErrEmptyChangeSet  = errors.New("update history entry requires a non-empty change set")
	ErrLedgerCorrupted = errors.New("order history is missing its creation entry")
)

// ValidationError wraps ErrValidation naming the offending field, so
// callers can both match with errors.Is and report the field.
func ValidationError(field string) error {
	return fmt.Errorf("%w: %s", ErrValidation, field)
}
