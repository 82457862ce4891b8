package domain

import "errors"

// Sentinel errors surfaced by the services. The HTTP layer classifies them
// with errors.Is and maps each to a status code.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInterval   = errors.New("booking start must be before its end")
	ErrOwnerConflict     = errors.New("owner cannot book their own item")
	ErrItemUnavailable   = errors.New("item is not available for booking")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidState      = errors.New("booking is no longer waiting for approval")
	ErrUnsupportedFilter = errors.New("unknown state filter")
	ErrNoItems           = errors.New("user owns no items")
	ErrNoPriorBooking    = errors.New("no finished approved booking for this item")
	ErrEmailTaken        = errors.New("email is already in use")
	ErrEmptyText         = errors.New("text must not be empty")
)
