package storage

import "errors"

// Typed storage failures. Implementations translate their driver's native
// error codes into these so callers never match on opaque strings.
var (
	// ErrNotFound means no row matched the given id.
	ErrNotFound = errors.New("storage: user not found")
	// ErrUniqueViolation means a unique constraint (username) was hit.
	ErrUniqueViolation = errors.New("storage: unique violation")
	// ErrDatabaseMissing means the configured database does not exist.
	ErrDatabaseMissing = errors.New("storage: database does not exist")
	// ErrAuthFailed means the database rejected the configured credentials.
	ErrAuthFailed = errors.New("storage: authentication failed")
	// ErrRelationMissing means the users table has not been created.
	ErrRelationMissing = errors.New("storage: relation does not exist")
)
