package concessions

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItemByID(ctx context.Context, id string) (*Item, error)
	GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error)
	GetAvailableItems(ctx context.Context) ([]Item, error)
	UpdateItem(ctx context.Context, item *Item) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateItem(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetItemByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error) {
	var items []Item
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetAvailableItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}
