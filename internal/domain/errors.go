package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotAuthenticated is returned when a cart mutation is attempted
	// without a user session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrLineNotFound is returned when an increment or decrement targets a
	// product with no cart line for the user.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrRemoteRead wraps a failed read against the backing store.
	ErrRemoteRead = errors.New("remote read failed")
	// ErrRemoteWrite wraps a failed write against the backing store.
	ErrRemoteWrite = errors.New("remote write failed")
)
