package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"
)

const itemColumns = `id, owner_id, name, description, available, request_id, created_at, updated_at`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (owner_id, name, description, available, request_id, created_at, updated_at)
	     VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.OwnerID, item.Name, item.Description, item.Available, item.RequestID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	err := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id).Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Description,
		&item.Available, &item.RequestID, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// UpdateItem applies a partial update; nil fields keep their stored value.
func (db *DB) UpdateItem(ctx context.Context, id int64, upd models.ItemUpdate) error {
	query := `UPDATE items SET
	              name = COALESCE(?, name),
	              description = COALESCE(?, description),
	              available = COALESCE(?, available),
	              updated_at = ?
	          WHERE id = ?`
	result, err := db.ExecContext(ctx, query, upd.Name, upd.Description, upd.Available, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`
	return db.queryItems(ctx, query, ownerID, page.Limit, page.Offset)
}

// SearchItems matches the text against name and description of available
// items. The empty string matches nothing.
func (db *DB) SearchItems(ctx context.Context, text string, page paging.Page) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
	          WHERE available = 1 AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
	          ORDER BY id LIMIT ? OFFSET ?`
	return db.queryItems(ctx, query, pattern, pattern, page.Limit, page.Offset)
}

func (db *DB) CountItemsByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (db *DB) ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...interface{}) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, &item.Description,
			&item.Available, &item.RequestID, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
