package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"
)

const requestColumns = `id, requester_id, description, created_at`

func (db *DB) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO requests (requester_id, description, created_at) VALUES (?, ?, ?)`,
		req.RequesterID, req.Description, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	req.ID = id
	req.CreatedAt = now
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	req := &models.ItemRequest{}
	err := db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id).Scan(
		&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

func (db *DB) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
	          WHERE requester_id = ? ORDER BY created_at DESC, id DESC`
	return db.queryRequests(ctx, query, requesterID)
}

// ListRequestsFromOthers pages through requests posted by everyone except
// the requester, newest first.
func (db *DB) ListRequestsFromOthers(ctx context.Context, requesterID int64, page paging.Page) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
	          WHERE requester_id != ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, requesterID, page.Limit, page.Offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ItemRequest
	for rows.Next() {
		req := &models.ItemRequest{}
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
