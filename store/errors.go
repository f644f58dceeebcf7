// Package store holds the repositories over the PocketBase collections.
package store

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no document matched the given key.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a lookup name is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalid means the input failed validation.
	ErrInvalid = errors.New("invalid input")
	// ErrStoreUnavailable wraps every other failure of the underlying store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// wrap classifies a store error for op. sql.ErrNoRows becomes ErrNotFound,
// anything else ErrStoreUnavailable with the cause kept in the chain.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// Invalid wraps a validation error so callers can match ErrInvalid.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}

// unavailable marks err as a store failure regardless of its kind. Used where
// sql.ErrNoRows would not mean the caller's key is missing.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
