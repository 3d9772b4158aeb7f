package diary

import "errors"

// Errors returned by Store. They are wrapped with detail, so match them
// with errors.Is.
var (
	ErrStorageUnavailable   = errors.New("database file cannot be opened")
	ErrAuthenticationFailed = errors.New("wrong password, cannot decrypt database")
	ErrNotUnlocked          = errors.New("database is not unlocked")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrStorageReadFailed    = errors.New("failed to read from database")
	ErrStorageWriteFailed   = errors.New("failed to write to database")
)
