package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, domain.ErrEmptyText
	}

	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update. Only the owner may edit an item.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, upd models.ItemUpdate) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domain.ErrAccessDenied
	}

	if err := s.repo.UpdateItem(ctx, itemID, upd); err != nil {
		return nil, err
	}
	return s.repo.GetItem(ctx, itemID)
}

// GetItem assembles the item detail view: comments for everyone, the last
// and next booking for the owner only.
func (s *ItemService) GetItem(ctx context.Context, actorID, itemID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &models.ItemView{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}

	comments, err := s.repo.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view.Comments = comments
	if view.Comments == nil {
		view.Comments = []*models.CommentView{}
	}

	if item.OwnerID == actorID {
		now := time.Now()
		if view.LastBooking, err = s.repo.LastBookingForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
		if view.NextBooking, err = s.repo.NextBookingForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Item, error) {
	page, err := paging.New(offset, limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListItemsByOwner(ctx, ownerID, page)
}

func (s *ItemService) Search(ctx context.Context, text string, offset, limit int) ([]*models.Item, error) {
	page, err := paging.New(offset, limit)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchItems(ctx, text, page)
}

// AddComment stores a comment if the author holds a past APPROVED booking of
// the item.
func (s *ItemService) AddComment(ctx context.Context, actorID, itemID int64, text string) (*models.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	author, err := s.repo.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	eligible, err := s.repo.HasPastApprovedBooking(ctx, actorID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.ErrNoPriorBooking
	}

	comment := &models.Comment{ItemID: itemID, AuthorID: actorID, Text: text}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return &models.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		CreatedAt:  comment.CreatedAt,
	}, nil
}
