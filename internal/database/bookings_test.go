package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    time.Now().Add(time.Hour),
		End:      time.Now().Add(2 * time.Hour),
	}
	err := db.CreateBooking(ctx, booking)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.False(t, booking.CreatedAt.IsZero())

	// Unknown item
	err = db.CreateBooking(ctx, &models.Booking{ItemID: 999, BookerID: booker.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Unavailable item
	unavailable := createTestItem(t, db, owner.ID, "Broken saw", false)
	err = db.CreateBooking(ctx, &models.Booking{ItemID: unavailable.ID, BookerID: booker.ID})
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestUpdateBookingStatusIfWaiting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	booking := &models.Booking{
		ItemID: item.ID, BookerID: booker.ID,
		Start: time.Now().Add(time.Hour), End: time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, db.CreateBooking(ctx, booking))

	// First transition wins
	err := db.UpdateBookingStatusIfWaiting(ctx, booking.ID, models.StatusApproved)
	require.NoError(t, err)

	// Second transition hits no WAITING row
	err = db.UpdateBookingStatusIfWaiting(ctx, booking.ID, models.StatusRejected)
	assert.ErrorIs(t, err, ErrStatusConflict)

	detail, err := db.GetBookingDetail(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, detail.Status)
	assert.Equal(t, item.Name, detail.ItemName)
	assert.Equal(t, owner.ID, detail.ItemOwnerID)
	assert.Equal(t, booker.Name, detail.BookerName)

	// Unknown booking also reports a conflict, the caller resolves which
	err = db.UpdateBookingStatusIfWaiting(ctx, 999, models.StatusApproved)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestGetBookingDetailNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBookingDetail(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// seedClassificationFixture creates one item with four bookings around "now":
// a finished approved one, a running approved one, a future waiting one and a
// future rejected one. Returns owner, booker and the booking IDs in start
// order (oldest first).
func seedClassificationFixture(t *testing.T, db *DB, now time.Time) (owner, booker *models.User, ids [4]int64) {
	t.Helper()
	ctx := context.Background()

	owner = createTestUser(t, db, "Owner", "owner@example.com")
	booker = createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	windows := []struct {
		start, end time.Time
		status     string
	}{
		{now.Add(-48 * time.Hour), now.Add(-24 * time.Hour), models.StatusApproved},
		{now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved},
		{now.Add(24 * time.Hour), now.Add(48 * time.Hour), models.StatusWaiting},
		{now.Add(72 * time.Hour), now.Add(96 * time.Hour), models.StatusRejected},
	}
	for i, w := range windows {
		b := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: w.start, End: w.end}
		require.NoError(t, db.CreateBooking(ctx, b))
		if w.status != models.StatusWaiting {
			require.NoError(t, db.UpdateBookingStatusIfWaiting(ctx, b.ID, w.status))
		}
		ids[i] = b.ID
	}
	return owner, booker, ids
}

func TestListBookingsClassification(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	owner, booker, ids := seedClassificationFixture(t, db, now)
	past, current, futureWaiting, futureRejected := ids[0], ids[1], ids[2], ids[3]

	page := paging.Page{Limit: 10, Offset: 0}
	query := func(scope domain.BookingScope, userID int64, filter string) []*models.BookingDetail {
		details, err := db.ListBookings(ctx, domain.BookingQuery{
			Scope: scope, UserID: userID, Filter: filter, Page: page, Now: now,
		})
		require.NoError(t, err)
		return details
	}
	idsOf := func(details []*models.BookingDetail) []int64 {
		out := make([]int64, 0, len(details))
		for _, d := range details {
			out = append(out, d.ID)
		}
		return out
	}

	// Booker scope, newest start first
	assert.Equal(t, []int64{futureRejected, futureWaiting, current, past},
		idsOf(query(domain.ScopeBooker, booker.ID, models.FilterAll)))
	assert.Equal(t, []int64{current}, idsOf(query(domain.ScopeBooker, booker.ID, models.FilterCurrent)))
	assert.Equal(t, []int64{past}, idsOf(query(domain.ScopeBooker, booker.ID, models.FilterPast)))
	assert.Equal(t, []int64{futureRejected, futureWaiting},
		idsOf(query(domain.ScopeBooker, booker.ID, models.FilterFuture)))
	assert.Equal(t, []int64{futureWaiting}, idsOf(query(domain.ScopeBooker, booker.ID, models.FilterWaiting)))
	assert.Equal(t, []int64{futureRejected}, idsOf(query(domain.ScopeBooker, booker.ID, models.FilterRejected)))

	// Owner scope sees the same rows through the item
	assert.Equal(t, []int64{futureRejected, futureWaiting, current, past},
		idsOf(query(domain.ScopeOwner, owner.ID, models.FilterAll)))

	// Wrong side of the scope sees nothing
	assert.Empty(t, query(domain.ScopeOwner, booker.ID, models.FilterAll))
	assert.Empty(t, query(domain.ScopeBooker, owner.ID, models.FilterAll))

	// Unknown filter is rejected
	_, err := db.ListBookings(ctx, domain.BookingQuery{
		Scope: domain.ScopeBooker, UserID: booker.ID, Filter: "BOGUS", Page: page, Now: now,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFilter)
}

func TestListBookingsPagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	_, booker, ids := seedClassificationFixture(t, db, now)

	firstPage, err := db.ListBookings(ctx, domain.BookingQuery{
		Scope: domain.ScopeBooker, UserID: booker.ID, Filter: models.FilterAll,
		Page: paging.Page{Limit: 3, Offset: 0}, Now: now,
	})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	assert.Equal(t, ids[3], firstPage[0].ID)

	secondPage, err := db.ListBookings(ctx, domain.BookingQuery{
		Scope: domain.ScopeBooker, UserID: booker.ID, Filter: models.FilterAll,
		Page: paging.Page{Limit: 3, Offset: 3}, Now: now,
	})
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, ids[0], secondPage[0].ID)
}

func TestListBookingsBetween(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	_, _, ids := seedClassificationFixture(t, db, now)

	// Window covering the two future bookings, earliest first
	details, err := db.ListBookingsBetween(ctx, now, now.Add(100*time.Hour))
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, ids[2], details[0].ID)
	assert.Equal(t, ids[3], details[1].ID)
}

func TestHasPastApprovedBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	stranger := createTestUser(t, db, "Stranger", "stranger@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	b := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)}
	require.NoError(t, db.CreateBooking(ctx, b))

	// Still WAITING: not eligible
	ok, err := db.HasPastApprovedBooking(ctx, booker.ID, item.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.UpdateBookingStatusIfWaiting(ctx, b.ID, models.StatusApproved))

	ok, err = db.HasPastApprovedBooking(ctx, booker.ID, item.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Approved but not yet ended: not eligible
	ok, err = db.HasPastApprovedBooking(ctx, booker.ID, item.ID, now.Add(-30*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	// Someone else's history does not count
	ok, err = db.HasPastApprovedBooking(ctx, stranger.ID, item.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastAndNextBookingForItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	// No bookings: both references are nil
	last, err := db.LastBookingForItem(ctx, item.ID, now)
	require.NoError(t, err)
	assert.Nil(t, last)
	next, err := db.NextBookingForItem(ctx, item.ID, now)
	require.NoError(t, err)
	assert.Nil(t, next)

	older := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(-72 * time.Hour), End: now.Add(-48 * time.Hour)}
	recent := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)}
	soon := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)}
	later := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(72 * time.Hour), End: now.Add(96 * time.Hour)}
	rejected := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)}
	for _, b := range []*models.Booking{older, recent, soon, later, rejected} {
		require.NoError(t, db.CreateBooking(ctx, b))
	}
	require.NoError(t, db.UpdateBookingStatusIfWaiting(ctx, rejected.ID, models.StatusRejected))

	last, err = db.LastBookingForItem(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, recent.ID, last.ID)
	assert.Equal(t, booker.ID, last.BookerID)

	// The rejected booking starts sooner but is skipped
	next, err = db.NextBookingForItem(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, soon.ID, next.ID)
}
