package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   int64     `json:"request_id,omitempty"` // 0 when the item was not offered against a request
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemRef is a short item snapshot embedded in views of other entities.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is the item detail representation. LastBooking/NextBooking are
// populated for the owner only.
type ItemView struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	RequestID   int64          `json:"request_id,omitempty"`
	LastBooking *BookingRef    `json:"last_booking,omitempty"`
	NextBooking *BookingRef    `json:"next_booking,omitempty"`
	Comments    []*CommentView `json:"comments"`
}

// ItemUpdate carries a partial item update; nil fields are left unchanged.
type ItemUpdate struct {
	Name        *string
	Description *string
	Available   *bool
}
