package domain

import "errors"

var (
	// ErrUnexpectedPayload is returned when a feed response does not have the expected shape
	ErrUnexpectedPayload = errors.New("unexpected payload structure")

	// ErrDatabaseUnavailable is returned when the database is still unreachable after the startup retries
	ErrDatabaseUnavailable = errors.New("database is unavailable after multiple attempts")

	// ErrMissingIdentifier is returned when a pool record lacks its pool id, chain or project
	ErrMissingIdentifier = errors.New("missing identifiers")
)
