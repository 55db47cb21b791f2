package contract

import "errors"

// ErrNotFound is returned by mutating operations whose target row does not
// exist (or is owned by another user). Services translate it into the
// appropriate user-facing message.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint blocks an insert.
var ErrDuplicate = errors.New("record already exists")
