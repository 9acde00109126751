package repositories

import "errors"

var (
	// ErrNotFound is returned when an update or delete matched no row
	ErrNotFound = errors.New("record not found")
)
