package theaters

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateTheater(ctx context.Context, theater *Theater) error
	GetTheaterByID(ctx context.Context, id string) (*Theater, error)
	GetAllTheaters(ctx context.Context, city string) ([]Theater, error)
	UpdateTheater(ctx context.Context, theater *Theater) error
	DeleteTheater(ctx context.Context, id string) error

	CreateAuditorium(ctx context.Context, auditorium *Auditorium) error
	GetAuditoriumByID(ctx context.Context, id string) (*Auditorium, error)
	GetAuditoriumSeats(ctx context.Context, auditoriumID string) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateTheater(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) GetTheaterByID(ctx context.Context, id string) (*Theater, error) {
	var theater Theater
	err := r.db.WithContext(ctx).
		Preload("Auditoriums").
		Where("id = ?", id).
		First(&theater).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &theater, nil
}

func (r *repository) GetAllTheaters(ctx context.Context, city string) ([]Theater, error) {
	var theaters []Theater
	query := r.db.WithContext(ctx).Order("name ASC")
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Find(&theaters).Error; err != nil {
		return nil, err
	}
	return theaters, nil
}

func (r *repository) UpdateTheater(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Save(theater).Error
}

func (r *repository) DeleteTheater(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Theater{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTheaterNotFound
	}
	return nil
}

// CreateAuditorium persists the auditorium together with its generated seats
// in a single transaction so a half-created layout never becomes visible.
func (r *repository) CreateAuditorium(ctx context.Context, auditorium *Auditorium) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seats := auditorium.Seats
		auditorium.Seats = nil

		if err := tx.Create(auditorium).Error; err != nil {
			return err
		}

		for i := range seats {
			seats[i].AuditoriumID = auditorium.ID
		}
		if len(seats) > 0 {
			if err := tx.CreateInBatches(seats, 200).Error; err != nil {
				return err
			}
		}

		auditorium.Seats = seats
		return nil
	})
}

func (r *repository) GetAuditoriumByID(ctx context.Context, id string) (*Auditorium, error) {
	var auditorium Auditorium
	err := r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_label ASC, \"column\" ASC")
		}).
		Where("id = ?", id).
		First(&auditorium).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditoriumNotFound
		}
		return nil, err
	}
	return &auditorium, nil
}

func (r *repository) GetAuditoriumSeats(ctx context.Context, auditoriumID string) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("auditorium_id = ?", auditoriumID).
		Order("row_label ASC, \"column\" ASC").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}
