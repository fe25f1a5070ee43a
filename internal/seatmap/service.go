package seatmap

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/catalog"
	"cinebook/internal/shared/config"
	"cinebook/internal/theaters"
)

var ErrShowtimeNotBookable = errors.New("showtime is not open for booking")

type Service interface {
	// Load builds the occupancy snapshot for a showtime. sessionID may be
	// empty; when set, that session's own holds show as available.
	Load(ctx context.Context, showtimeID, sessionID string) (*SeatMap, error)

	// Validate runs the toggle rules without touching any stored state.
	Validate(ctx context.Context, showtimeID, sessionID string, selected []string, toggle string) (Selection, *SeatMap, error)

	Holds() *HoldStore
}

type service struct {
	repo      Repository
	catalog   catalog.Service
	theaters  theaters.Service
	holds     *HoldStore
	validator *Validator
}

func NewService(repo Repository, catalogService catalog.Service, theaterService theaters.Service, holds *HoldStore, cfg *config.Config) Service {
	return &service{
		repo:      repo,
		catalog:   catalogService,
		theaters:  theaterService,
		holds:     holds,
		validator: &Validator{MaxSeats: cfg.Booking.MaxSeatsPerSession},
	}
}

func (s *service) Load(ctx context.Context, showtimeID, sessionID string) (*SeatMap, error) {
	showtime, err := s.catalog.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.Status.IsBookable() {
		return nil, ErrShowtimeNotBookable
	}

	auditorium, err := s.theaters.GetAuditorium(ctx, showtime.AuditoriumID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load auditorium layout: %w", err)
	}

	sold, err := s.repo.SoldLabels(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold seats: %w", err)
	}

	held, err := s.holds.HeldLabels(ctx, showtimeID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seat holds: %w", err)
	}

	return NewSeatMap(showtimeID, auditorium.Seats, sold, held), nil
}

func (s *service) Validate(ctx context.Context, showtimeID, sessionID string, selected []string, toggle string) (Selection, *SeatMap, error) {
	sm, err := s.Load(ctx, showtimeID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	next, err := s.validator.TryToggle(NewSelection(selected...), toggle, sm)
	if err != nil {
		return nil, sm, err
	}
	return next, sm, nil
}

func (s *service) Holds() *HoldStore {
	return s.holds
}
