package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingDetailColumns = `b.id, b.item_id, b.booker_id, b.start_at, b.end_at, b.status,
	             b.created_at, b.updated_at, i.name, i.owner_id, u.name`

const bookingDetailFrom = ` FROM bookings b
	      JOIN items i ON i.id = b.item_id
	      JOIN users u ON u.id = b.booker_id`

// CreateBooking inserts a new WAITING booking. The item's availability flag
// is re-read inside the transaction so a concurrent item update cannot slip
// an unavailable item past the check.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM items WHERE id = ?`, booking.ItemID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check item in tx: %w", err)
	}
	if !available {
		return domain.ErrItemUnavailable
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
	     VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.ItemID,
		booking.BookerID,
		booking.Start.UTC(),
		booking.End.UTC(),
		models.StatusWaiting,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.Status = models.StatusWaiting
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

// GetBookingDetail returns the booking joined with its item and booker.
func (db *DB) GetBookingDetail(ctx context.Context, id int64) (*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom + ` WHERE b.id = ?`

	d := &models.BookingDetail{}
	err := db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.ItemID, &d.BookerID, &d.Start, &d.End, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.ItemName, &d.ItemOwnerID, &d.BookerName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return d, nil
}

// UpdateBookingStatusIfWaiting finalizes a booking with a conditional update
// keyed on the WAITING status. Of two concurrent calls exactly one matches a
// row; the other gets ErrStatusConflict.
func (db *DB) UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id, models.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStatusConflict
	}
	return nil
}

// ListBookings runs the classification query for one scope, filter and page.
// Ordering is start DESC with id as a deterministic tie-breaker.
func (db *DB) ListBookings(ctx context.Context, q domain.BookingQuery) ([]*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom

	args := make([]interface{}, 0, 6)
	switch q.Scope {
	case domain.ScopeOwner:
		query += ` WHERE i.owner_id = ?`
	default:
		query += ` WHERE b.booker_id = ?`
	}
	args = append(args, q.UserID)

	now := q.Now.UTC()
	switch q.Filter {
	case models.FilterAll:
	case models.FilterCurrent:
		query += ` AND b.start_at < ? AND b.end_at > ?`
		args = append(args, now, now)
	case models.FilterPast:
		query += ` AND b.end_at < ?`
		args = append(args, now)
	case models.FilterFuture:
		query += ` AND b.start_at > ?`
		args = append(args, now)
	case models.FilterWaiting, models.FilterRejected:
		query += ` AND b.status = ?`
		args = append(args, q.Filter)
	default:
		return nil, domain.ErrUnsupportedFilter
	}

	query += ` ORDER BY b.start_at DESC, b.id LIMIT ? OFFSET ?`
	args = append(args, q.Page.Limit, q.Page.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var details []*models.BookingDetail
	for rows.Next() {
		d := &models.BookingDetail{}
		err := rows.Scan(
			&d.ID, &d.ItemID, &d.BookerID, &d.Start, &d.End, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.ItemName, &d.ItemOwnerID, &d.BookerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListBookingsBetween returns all bookings whose window starts inside the
// period, earliest first. Used by the report exporter.
func (db *DB) ListBookingsBetween(ctx context.Context, start, end time.Time) ([]*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + bookingDetailFrom +
		` WHERE b.start_at >= ? AND b.start_at <= ? ORDER BY b.start_at, b.id`

	rows, err := db.QueryContext(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by period: %w", err)
	}
	defer rows.Close()

	var details []*models.BookingDetail
	for rows.Next() {
		d := &models.BookingDetail{}
		err := rows.Scan(
			&d.ID, &d.ItemID, &d.BookerID, &d.Start, &d.End, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.ItemName, &d.ItemOwnerID, &d.BookerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// HasPastApprovedBooking reports whether the booker holds at least one
// APPROVED booking of the item that has already ended.
func (db *DB) HasPastApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS(
	            SELECT 1 FROM bookings
	            WHERE booker_id = ? AND item_id = ? AND status = ? AND end_at < ?)`
	var exists bool
	err := db.QueryRowContext(ctx, query, bookerID, itemID, models.StatusApproved, now.UTC()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check past bookings: %w", err)
	}
	return exists, nil
}

// LastBookingForItem returns the most recently started booking with
// start <= now, skipping rejected ones. Nil when there is none.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id, start_at, end_at FROM bookings
	          WHERE item_id = ? AND start_at <= ? AND status != ?
	          ORDER BY start_at DESC, id DESC LIMIT 1`
	return db.scanBookingRef(ctx, query, itemID, now.UTC(), models.StatusRejected)
}

// NextBookingForItem returns the earliest booking with start > now, skipping
// rejected ones. Nil when there is none.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id, start_at, end_at FROM bookings
	          WHERE item_id = ? AND start_at > ? AND status != ?
	          ORDER BY start_at, id LIMIT 1`
	return db.scanBookingRef(ctx, query, itemID, now.UTC(), models.StatusRejected)
}

func (db *DB) scanBookingRef(ctx context.Context, query string, args ...interface{}) (*models.BookingRef, error) {
	ref := &models.BookingRef{}
	err := db.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.BookerID, &ref.Start, &ref.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking ref: %w", err)
	}
	return ref, nil
}
