package concessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

var (
	ErrItemNotFound    = errors.New("concession item not found")
	ErrItemUnavailable = errors.New("concession item unavailable")
)

type Service interface {
	CreateItem(ctx context.Context, req *CreateItemRequest) (*Item, error)
	GetAvailableItems(ctx context.Context) ([]Item, error)
	UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*Item, error)

	// Resolve turns a selection into priced items, rejecting unknown or
	// unavailable ones.
	Resolve(ctx context.Context, sel Selection) ([]Item, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) CreateItem(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	item := &Item{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		Available: true,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create concession item: %w", err)
	}

	s.invalidateCache(ctx)
	return item, nil
}

func (s *service) GetAvailableItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CONCESSIONS, constants.TTL_SEMI_STATIC_QUICK,
		func() (interface{}, error) {
			return s.repo.GetAvailableItems(ctx)
		}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update concession item: %w", err)
	}

	s.invalidateCache(ctx)
	return item, nil
}

func (s *service) Resolve(ctx context.Context, sel Selection) ([]Item, error) {
	if len(sel) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}

	items, err := s.repo.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[string]*Item, len(items))
	for i := range items {
		found[items[i].ID.String()] = &items[i]
	}

	resolved := make([]Item, 0, len(sel))
	for _, id := range ids {
		item, ok := found[id]
		if !ok {
			return nil, ErrItemNotFound
		}
		if !item.Available {
			return nil, ErrItemUnavailable
		}
		resolved = append(resolved, *item)
	}
	return resolved, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_CONCESSIONS); err != nil {
		slog.Warn("failed to invalidate concessions cache", "error", err)
	}
}
