package repositories

import "errors"

// Typed errors returned by repositories so handlers can map them to HTTP
// statuses deterministically instead of string-matching store errors.
var (
	// ErrNotFound means a referenced user, activity, or collection root
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a concurrent write collided on the same key after
	// an internal retry; the caller may retry later.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrSelfFollow means a user attempted to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
