package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateMovie(ctx context.Context, movie *Movie) error
	GetMovieByID(ctx context.Context, id string) (*Movie, error)
	GetAllMovies(ctx context.Context, status MovieStatus) ([]Movie, error)
	UpdateMovie(ctx context.Context, movie *Movie) error
	DeleteMovie(ctx context.Context, id string) error

	CreateShowtime(ctx context.Context, showtime *Showtime) error
	GetShowtimeByID(ctx context.Context, id string) (*Showtime, error)
	GetShowtimesByMovie(ctx context.Context, movieID string) ([]Showtime, error)
	UpdateShowtime(ctx context.Context, showtime *Showtime) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateMovie(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetMovieByID(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *repository) GetAllMovies(ctx context.Context, status MovieStatus) ([]Movie, error) {
	var movies []Movie
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *repository) UpdateMovie(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *repository) DeleteMovie(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Movie{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (r *repository) CreateShowtime(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetShowtimeByID(ctx context.Context, id string) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("id = ?", id).
		First(&showtime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) GetShowtimesByMovie(ctx context.Context, movieID string) ([]Showtime, error) {
	var showtimes []Showtime
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND status = ?", movieID, ShowtimeScheduled).
		Order("starts_at ASC").
		Find(&showtimes).Error
	if err != nil {
		return nil, err
	}
	return showtimes, nil
}

func (r *repository) UpdateShowtime(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Save(showtime).Error
}
