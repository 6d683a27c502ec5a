package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotAuthenticated is returned for any call made without a caller identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound is returned when no row with the id exists in the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks input rejected by validation.
	ErrInvalid = errors.New("invalid input")
	// ErrDuplicate is returned when a username or email is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrForbidden is returned when the caller may not perform the change at all.
	ErrForbidden = errors.New("forbidden")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
