package theaters

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
	ErrTheaterNotFound    = errors.New("theater not found")
	ErrAuditoriumNotFound = errors.New("auditorium not found")
	ErrDuplicateRowLabel  = errors.New("duplicate row label in layout")
)

type Service interface {
	CreateTheater(ctx context.Context, req *CreateTheaterRequest) (*Theater, error)
	GetTheater(ctx context.Context, id string) (*Theater, error)
	GetAllTheaters(ctx context.Context, city string) ([]Theater, error)
	UpdateTheater(ctx context.Context, id string, req *UpdateTheaterRequest) (*Theater, error)
	DeleteTheater(ctx context.Context, id string) error

	CreateAuditorium(ctx context.Context, theaterID string, req *CreateAuditoriumRequest) (*Auditorium, error)
	GetAuditorium(ctx context.Context, id string) (*Auditorium, error)
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

func (s *service) CreateTheater(ctx context.Context, req *CreateTheaterRequest) (*Theater, error) {
	theater := &Theater{
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
	}

	if err := s.repo.CreateTheater(ctx, theater); err != nil {
		return nil, fmt.Errorf("failed to create theater: %w", err)
	}
	return theater, nil
}

func (s *service) GetTheater(ctx context.Context, id string) (*Theater, error) {
	return s.repo.GetTheaterByID(ctx, id)
}

func (s *service) GetAllTheaters(ctx context.Context, city string) ([]Theater, error) {
	return s.repo.GetAllTheaters(ctx, city)
}

func (s *service) UpdateTheater(ctx context.Context, id string, req *UpdateTheaterRequest) (*Theater, error) {
	theater, err := s.repo.GetTheaterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.City != nil {
		theater.City = *req.City
	}
	if req.Address != nil {
		theater.Address = *req.Address
	}

	if err := s.repo.UpdateTheater(ctx, theater); err != nil {
		return nil, fmt.Errorf("failed to update theater: %w", err)
	}
	return theater, nil
}

func (s *service) DeleteTheater(ctx context.Context, id string) error {
	return s.repo.DeleteTheater(ctx, id)
}

// CreateAuditorium generates the physical seat grid from the row specs.
// Seats are numbered 1..N left to right within each row.
func (s *service) CreateAuditorium(ctx context.Context, theaterID string, req *CreateAuditoriumRequest) (*Auditorium, error) {
	theaterUUID, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, ErrTheaterNotFound
	}
	if _, err := s.repo.GetTheaterByID(ctx, theaterID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Rows))
	var seats []Seat
	for _, row := range req.Rows {
		if seen[row.Label] {
			return nil, ErrDuplicateRowLabel
		}
		seen[row.Label] = true

		for col := 1; col <= row.Seats; col++ {
			seats = append(seats, Seat{
				Label:    SeatLabel(row.Label, col),
				RowLabel: row.Label,
				Column:   col,
				Class:    SeatClass(row.Class),
			})
		}
	}

	auditorium := &Auditorium{
		TheaterID: theaterUUID,
		Name:      req.Name,
		Seats:     seats,
	}

	if err := s.repo.CreateAuditorium(ctx, auditorium); err != nil {
		return nil, fmt.Errorf("failed to create auditorium: %w", err)
	}

	s.invalidateAuditoriumCache(ctx, auditorium.ID.String())
	return auditorium, nil
}

func (s *service) GetAuditorium(ctx context.Context, id string) (*Auditorium, error) {
	var auditorium Auditorium
	err := s.cache.GetOrSet(ctx, constants.BuildAuditoriumKey(id), constants.TTL_STATIC_MEDIUM,
		func() (interface{}, error) {
			return s.repo.GetAuditoriumByID(ctx, id)
		}, &auditorium)
	if err != nil {
		return nil, err
	}
	return &auditorium, nil
}

func (s *service) invalidateAuditoriumCache(ctx context.Context, auditoriumID string) {
	if err := s.cache.Delete(ctx, constants.BuildAuditoriumKey(auditoriumID)); err != nil {
		slog.Warn("failed to invalidate auditorium cache", "auditorium_id", auditoriumID, "error", err)
	}
}
