package repository

import "errors"

// ErrNotFound reports a lookup against a record that does not exist.
var ErrNotFound = errors.New("not found")
