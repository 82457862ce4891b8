package database

import "errors"

// ErrStatusConflict is returned when a conditional status update matched no
// row in the expected prior status. The booking engine translates it to the
// domain-level invalid-state error.
var ErrStatusConflict = errors.New("booking status changed concurrently")
