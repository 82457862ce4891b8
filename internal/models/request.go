package models

import "time"

// ItemRequest is an open ask for an item nobody has listed yet. Owners
// answer by creating items that reference the request.
type ItemRequest struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestView is a request together with the items offered against it.
type RequestView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []*Item   `json:"items"`
}
