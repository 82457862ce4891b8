package domain

import (
	"context"
	"time"

	"shareit/internal/models"
	"shareit/internal/paging"
)

// BookingScope selects which foreign key a booking listing filters on.
type BookingScope int

const (
	ScopeBooker BookingScope = iota
	ScopeOwner
)

// BookingQuery parameterizes the classification listing: one scope, one
// filter, one page. Now is the instant the temporal predicates evaluate
// against.
type BookingQuery struct {
	Scope  BookingScope
	UserID int64
	Filter string
	Page   paging.Page
	Now    time.Time
}

type Repository interface {
	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingDetail(ctx context.Context, id int64) (*models.BookingDetail, error)
	UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status string) error
	ListBookings(ctx context.Context, q BookingQuery) ([]*models.BookingDetail, error)
	HasPastApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)

	// Items
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, upd models.ItemUpdate) error
	ListItemsByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, page paging.Page) ([]*models.Item, error)
	CountItemsByOwner(ctx context.Context, ownerID int64) (int, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.CommentView, error)

	// Item requests
	CreateRequest(ctx context.Context, req *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	ListRequestsFromOthers(ctx context.Context, requesterID int64, page paging.Page) ([]*models.ItemRequest, error)
}

// EventPublisher decouples the services from event delivery.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter answers whether a client may perform one more request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
