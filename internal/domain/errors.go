package domain

import "errors"

// ErrNotFound is returned by repositories when a row is absent. Usecases map
// it to the HTTP-level NotFound error.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate is returned by repositories on a unique-constraint violation,
// e.g. a second application to the same offer.
var ErrDuplicate = errors.New("duplicate resource")
