package repository

import "errors"

// ErrNotFound indicates an entity was not located. Owner-scoped lookups
// return it both for absent rows and rows owned by someone else, so the
// two cases are indistinguishable to callers.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a uniqueness constraint was violated.
var ErrConflict = errors.New("repository: conflict")
