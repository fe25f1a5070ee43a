package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon expired")
	ErrCouponInactive      = errors.New("coupon inactive")
	ErrBelowMinimum        = errors.New("purchase below coupon minimum")
	ErrAlreadyApplied      = errors.New("coupon already applied")
	ErrInsufficientBalance = errors.New("insufficient coupon balance")
)

type Service interface {
	CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*Coupon, error)
	GetAllCoupons(ctx context.Context) ([]Coupon, error)
	DeactivateCoupon(ctx context.Context, code string) error

	// Validate checks a coupon against a purchase subtotal without applying
	// it. Returns the coupon so the caller can attach it to a session.
	Validate(ctx context.Context, code string, subtotal int64, applied []string) (*Coupon, error)

	// Settle debits stored-balance coupons when a session is paid.
	// Percentage and fixed coupons carry no balance and are skipped.
	Settle(ctx context.Context, tx *gorm.DB, sessionID string, settlements []Settlement) error
}

// Settlement is one applied coupon's contribution to a paid session.
type Settlement struct {
	CouponID uuid.UUID
	Code     string
	Type     CouponType
	Amount   int64
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*Coupon, error) {
	coupon := &Coupon{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:        CouponType(req.Type),
		Value:       req.Value,
		Balance:     req.Balance,
		MinPurchase: req.MinPurchase,
		ExpiresAt:   req.ExpiresAt,
		Active:      true,
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *service) GetAllCoupons(ctx context.Context) ([]Coupon, error) {
	return s.repo.GetAllCoupons(ctx)
}

func (s *service) DeactivateCoupon(ctx context.Context, code string) error {
	coupon, err := s.repo.GetCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	coupon.Active = false
	return s.repo.UpdateCoupon(ctx, coupon)
}

func (s *service) Validate(ctx context.Context, code string, subtotal int64, applied []string) (*Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	for _, existing := range applied {
		if existing == normalized {
			return nil, ErrAlreadyApplied
		}
	}

	coupon, err := s.repo.GetCouponByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.Expired(time.Now()) {
		return nil, ErrCouponExpired
	}
	if subtotal < coupon.MinPurchase {
		return nil, ErrBelowMinimum
	}
	if coupon.Type == TypeStoredBalance && coupon.Balance <= 0 {
		return nil, ErrInsufficientBalance
	}

	return coupon, nil
}

func (s *service) Settle(ctx context.Context, tx *gorm.DB, sessionID string, settlements []Settlement) error {
	for _, st := range settlements {
		if st.Type != TypeStoredBalance || st.Amount <= 0 {
			continue
		}
		if err := s.repo.DebitBalance(ctx, tx, st.CouponID.String(), sessionID, st.Amount); err != nil {
			return fmt.Errorf("failed to settle coupon %s: %w", st.Code, err)
		}
	}
	return nil
}

func parseUUIDInto(value string, dest *uuid.UUID) error {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid uuid %q: %w", value, err)
	}
	*dest = parsed
	return nil
}
