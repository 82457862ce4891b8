package models

import "time"

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking is the persisted record of a request to use an item for a time
// window. Start/End are immutable after creation; only Status changes, and
// only once (WAITING -> APPROVED or REJECTED).
type Booking struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetail is a booking joined with its item and booker. Read fresh on
// every query, never stored.
type BookingDetail struct {
	Booking
	ItemName    string
	ItemOwnerID int64
	BookerName  string
}

// BookingView is the externally visible shape of a booking.
type BookingView struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemRef   `json:"item"`
	Booker UserRef   `json:"booker"`
}

// BookingRef is a short booking snapshot embedded in item views.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (d *BookingDetail) View() *BookingView {
	return &BookingView{
		ID:     d.ID,
		Start:  d.Start,
		End:    d.End,
		Status: d.Status,
		Item:   ItemRef{ID: d.ItemID, Name: d.ItemName},
		Booker: UserRef{ID: d.BookerID, Name: d.BookerName},
	}
}
