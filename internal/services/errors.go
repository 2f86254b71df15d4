package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a lookup by id or natural key matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers both bad login credentials and unresolvable
	// tokens. Login failure causes are deliberately indistinguishable so the
	// API does not reveal which phone numbers are registered.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken signals a token that failed signature, shape, or
	// expiry checks.
	ErrInvalidToken = errors.New("invalid token")
)

// ConflictError reports a natural-key collision, echoing the offending key.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.Key)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
