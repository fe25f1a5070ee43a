package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
)

type Service interface {
	CreateMovie(ctx context.Context, req *CreateMovieRequest) (*Movie, error)
	GetMovie(ctx context.Context, id string) (*Movie, error)
	GetAllMovies(ctx context.Context, status string) ([]Movie, error)
	UpdateMovie(ctx context.Context, id string, req *UpdateMovieRequest) (*Movie, error)
	DeleteMovie(ctx context.Context, id string) error

	CreateShowtime(ctx context.Context, req *CreateShowtimeRequest) (*Showtime, error)
	GetShowtime(ctx context.Context, id string) (*Showtime, error)
	GetShowtimesByMovie(ctx context.Context, movieID string) ([]Showtime, error)
	UpdateShowtime(ctx context.Context, id string, req *UpdateShowtimeRequest) (*Showtime, error)
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

func (s *service) CreateMovie(ctx context.Context, req *CreateMovieRequest) (*Movie, error) {
	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Rating:      req.Rating,
		DurationMin: req.DurationMin,
		PosterURL:   req.PosterURL,
		Status:      MovieComingSoon,
	}

	if err := s.repo.CreateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateCatalogCache(ctx)
	return movie, nil
}

func (s *service) GetMovie(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	err := s.cache.GetOrSet(ctx, constants.BuildMovieKey(id), constants.TTL_STATIC_LONG,
		func() (interface{}, error) {
			return s.repo.GetMovieByID(ctx, id)
		}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *service) GetAllMovies(ctx context.Context, status string) ([]Movie, error) {
	// Filtered listings bypass the cache; only the full list is cached
	if status != "" {
		return s.repo.GetAllMovies(ctx, MovieStatus(status))
	}

	var movies []Movie
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_MOVIES_LIST, constants.TTL_SEMI_STATIC_SHORT,
		func() (interface{}, error) {
			return s.repo.GetAllMovies(ctx, "")
		}, &movies)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *service) UpdateMovie(ctx context.Context, id string, req *UpdateMovieRequest) (*Movie, error) {
	movie, err := s.repo.GetMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.DurationMin != nil {
		movie.DurationMin = *req.DurationMin
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.Status != nil {
		movie.Status = MovieStatus(*req.Status)
	}

	if err := s.repo.UpdateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidateCatalogCache(ctx)
	return movie, nil
}

func (s *service) DeleteMovie(ctx context.Context, id string) error {
	if err := s.repo.DeleteMovie(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

func (s *service) CreateShowtime(ctx context.Context, req *CreateShowtimeRequest) (*Showtime, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, ErrMovieNotFound
	}
	auditoriumID, err := uuid.Parse(req.AuditoriumID)
	if err != nil {
		return nil, fmt.Errorf("invalid auditorium id: %w", err)
	}

	// Movie must exist before scheduling a screening of it
	if _, err := s.repo.GetMovieByID(ctx, req.MovieID); err != nil {
		return nil, err
	}

	showtime := &Showtime{
		MovieID:      movieID,
		AuditoriumID: auditoriumID,
		StartsAt:     req.StartsAt,
		BasePrice:    req.BasePrice,
		Status:       ShowtimeScheduled,
	}

	if err := s.repo.CreateShowtime(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	s.invalidateCatalogCache(ctx)
	return showtime, nil
}

func (s *service) GetShowtime(ctx context.Context, id string) (*Showtime, error) {
	var showtime Showtime
	err := s.cache.GetOrSet(ctx, constants.BuildShowtimeKey(id), constants.TTL_SEMI_STATIC_MEDIUM,
		func() (interface{}, error) {
			return s.repo.GetShowtimeByID(ctx, id)
		}, &showtime)
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (s *service) GetShowtimesByMovie(ctx context.Context, movieID string) ([]Showtime, error) {
	var showtimes []Showtime
	err := s.cache.GetOrSet(ctx, constants.BuildShowtimesByMovieKey(movieID), constants.TTL_SEMI_STATIC_SHORT,
		func() (interface{}, error) {
			return s.repo.GetShowtimesByMovie(ctx, movieID)
		}, &showtimes)
	if err != nil {
		return nil, err
	}
	return showtimes, nil
}

func (s *service) UpdateShowtime(ctx context.Context, id string, req *UpdateShowtimeRequest) (*Showtime, error) {
	showtime, err := s.repo.GetShowtimeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartsAt != nil {
		showtime.StartsAt = *req.StartsAt
	}
	if req.BasePrice != nil {
		showtime.BasePrice = *req.BasePrice
	}
	if req.Status != nil {
		showtime.Status = ShowtimeStatus(*req.Status)
	}

	if err := s.repo.UpdateShowtime(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to update showtime: %w", err)
	}

	s.invalidateCatalogCache(ctx)
	return showtime, nil
}

func (s *service) invalidateCatalogCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG); err != nil {
		slog.Warn("failed to invalidate catalog cache", "error", err)
	}
}
