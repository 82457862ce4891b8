// Package paging translates raw offset/limit parameters into bounded,
// page-aligned slice requests shared by every listing query.
package paging

import "errors"

var ErrInvalidPage = errors.New("invalid pagination parameters")

// Page is a window over an ordered result set. Offset is already aligned to
// a page boundary and can be used directly in a LIMIT/OFFSET clause.
type Page struct {
	Limit  int
	Offset int
}

// New validates offset/limit and snaps the offset to a page boundary via
// integer division: pageIndex = offset/limit, row offset = pageIndex*limit.
// offset=5,limit=3 therefore lands on page 1 (rows 3..5), not on row 5.
// Callers depend on this exact behavior; do not replace it with a plain row
// offset.
func New(offset, limit int) (Page, error) {
	if offset < 0 || limit <= 0 {
		return Page{}, ErrInvalidPage
	}
	pageIndex := 0
	if offset > 0 {
		pageIndex = offset / limit
	}
	return Page{Limit: limit, Offset: pageIndex * limit}, nil
}
