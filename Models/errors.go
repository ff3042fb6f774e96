package Models

import "errors"

var (
	// ErrNotFound is returned when a referenced branch, role, worker or task
	// does not exist or has been deactivated.
	ErrNotFound = errors.New("record not found")

	// ErrPhoneTaken is returned when a phone number is already registered,
	// including by a deactivated worker. Deactivated rows keep their phone so
	// a re-registration never collides with history.
	ErrPhoneTaken = errors.New("phone number already registered")
)
