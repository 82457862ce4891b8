package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO comments (item_id, author_id, text, created_at) VALUES (?, ?, ?, ?)`,
		comment.ItemID, comment.AuthorID, comment.Text, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	comment.CreatedAt = now
	return nil
}

// ListCommentsByItem returns comments with the author name joined in.
func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.CommentView, error) {
	query := `SELECT c.id, c.text, u.name, c.created_at
	          FROM comments c
	          JOIN users u ON u.id = c.author_id
	          WHERE c.item_id = ?
	          ORDER BY c.created_at DESC, c.id DESC`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.CommentView
	for rows.Next() {
		c := &models.CommentView{}
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
