package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrEmptyText
	}
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &models.ItemRequest{RequesterID: requesterID, Description: description}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListOwn returns the actor's requests, newest first, each with the items
// offered in response.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

// ListOthers pages through requests posted by other users so an owner can
// find something to fulfil.
func (s *RequestService) ListOthers(ctx context.Context, actorID int64, offset, limit int) ([]*models.RequestView, error) {
	page, err := paging.New(offset, limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsFromOthers(ctx, actorID, page)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, actorID, requestID int64) (*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.toViews(ctx, []*models.ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *RequestService) toViews(ctx context.Context, requests []*models.ItemRequest) ([]*models.RequestView, error) {
	views := make([]*models.RequestView, 0, len(requests))
	for _, req := range requests {
		items, err := s.repo.ListItemsByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []*models.Item{}
		}
		views = append(views, &models.RequestView{
			ID:          req.ID,
			Description: req.Description,
			CreatedAt:   req.CreatedAt,
			Items:       items,
		})
	}
	return views, nil
}
