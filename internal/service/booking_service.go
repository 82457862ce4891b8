package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/paging"

	"github.com/rs/zerolog"
)

// ParseFilter normalizes a raw state filter. Anything outside the six known
// classifications is rejected.
func ParseFilter(raw string) (string, error) {
	switch f := strings.ToUpper(strings.TrimSpace(raw)); f {
	case models.FilterAll, models.FilterCurrent, models.FilterPast,
		models.FilterFuture, models.FilterWaiting, models.FilterRejected:
		return f, nil
	case "":
		return models.FilterAll, nil
	default:
		return "", domain.ErrUnsupportedFilter
	}
}

// BookingService is the booking lifecycle engine: creation invariants, the
// WAITING -> APPROVED/REJECTED transition and the classification queries.
type BookingService struct {
	repo   domain.Repository
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

func NewBookingService(repo domain.Repository, bus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, bus: bus, logger: logger}
}

// CreateBooking validates the request and persists a WAITING booking.
// The interval check runs before any lookup so an inverted window fails the
// same way for any item/user combination.
func (s *BookingService) CreateBooking(ctx context.Context, actorID, itemID int64, start, end time.Time) (*models.BookingView, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidInterval
	}

	booker, err := s.repo.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == actorID {
		return nil, domain.ErrOwnerConflict
	}
	if !item.Available {
		return nil, domain.ErrItemUnavailable
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: actorID,
		Start:    start,
		End:      end,
	}
	// The store re-checks availability inside its transaction.
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBooking("create", "created")
	s.publishEvent(events.EventBookingCreated, booking, item.Name, actorID)

	return &models.BookingView{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Item:   models.ItemRef{ID: item.ID, Name: item.Name},
		Booker: models.UserRef{ID: booker.ID, Name: booker.Name},
	}, nil
}

// SetApproval finalizes a WAITING booking. Only the item owner may call it,
// and only once: the conditional update guarantees a single winner under
// concurrency, the loser observes the post-transition state.
func (s *BookingService) SetApproval(ctx context.Context, actorID, bookingID int64, approved bool) (*models.BookingView, error) {
	detail, err := s.repo.GetBookingDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.ItemOwnerID != actorID {
		return nil, domain.ErrAccessDenied
	}
	if detail.Status != models.StatusWaiting {
		return nil, domain.ErrInvalidState
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.repo.UpdateBookingStatusIfWaiting(ctx, bookingID, status); err != nil {
		if errors.Is(err, database.ErrStatusConflict) {
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}

	detail.Status = status
	metrics.IncBooking("approval", strings.ToLower(status))
	s.publishEvent(eventType, &detail.Booking, detail.ItemName, actorID)

	return detail.View(), nil
}

// GetBooking returns the view of one booking to its booker or item owner.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*models.BookingView, error) {
	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	detail, err := s.repo.GetBookingDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.BookerID != actorID && detail.ItemOwnerID != actorID {
		return nil, domain.ErrAccessDenied
	}
	return detail.View(), nil
}

// ListForBooker returns the actor's own bookings classified by filter,
// newest start first.
func (s *BookingService) ListForBooker(ctx context.Context, actorID int64, filter string, offset, limit int) ([]*models.BookingView, error) {
	return s.list(ctx, domain.ScopeBooker, actorID, filter, offset, limit)
}

// ListForOwner returns bookings of items the actor owns. An owner with no
// items has nothing to report on and gets ErrNoItems.
func (s *BookingService) ListForOwner(ctx context.Context, actorID int64, filter string, offset, limit int) ([]*models.BookingView, error) {
	return s.list(ctx, domain.ScopeOwner, actorID, filter, offset, limit)
}

func (s *BookingService) list(ctx context.Context, scope domain.BookingScope, actorID int64, filter string, offset, limit int) ([]*models.BookingView, error) {
	page, err := paging.New(offset, limit)
	if err != nil {
		return nil, err
	}

	f, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	if scope == domain.ScopeOwner {
		count, err := s.repo.CountItemsByOwner(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domain.ErrNoItems
		}
	}

	details, err := s.repo.ListBookings(ctx, domain.BookingQuery{
		Scope:  scope,
		UserID: actorID,
		Filter: f,
		Page:   page,
		Now:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	views := make([]*models.BookingView, 0, len(details))
	for _, d := range details {
		views = append(views, d.View())
	}
	return views, nil
}

// CanComment reports whether the actor holds a past APPROVED booking of the
// item, the precondition for commenting on it.
func (s *BookingService) CanComment(ctx context.Context, actorID, itemID int64) (bool, error) {
	return s.repo.HasPastApprovedBooking(ctx, actorID, itemID, time.Now())
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, itemName string, actorID int64) {
	if s.bus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  itemName,
		BookerID:  booking.BookerID,
		Start:     booking.Start,
		End:       booking.End,
		Status:    booking.Status,
		ActorID:   actorID,
	}

	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
