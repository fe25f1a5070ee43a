package coupons

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateCoupon(ctx context.Context, coupon *Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*Coupon, error)
	GetAllCoupons(ctx context.Context) ([]Coupon, error)
	UpdateCoupon(ctx context.Context, coupon *Coupon) error

	// DebitBalance spends from a stored-balance coupon and records the
	// redemption. The guarded UPDATE refuses an overdraw.
	DebitBalance(ctx context.Context, tx *gorm.DB, couponID, sessionID string, amount int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *repository) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	var coupon Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) GetAllCoupons(ctx context.Context) ([]Coupon, error) {
	var list []Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpdateCoupon(ctx context.Context, coupon *Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *repository) DebitBalance(ctx context.Context, tx *gorm.DB, couponID, sessionID string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	db := r.db
	if tx != nil {
		db = tx
	}

	result := db.WithContext(ctx).
		Model(&Coupon{}).
		Where("id = ? AND balance >= ?", couponID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	redemption := &Redemption{Amount: amount}
	if err := parseUUIDInto(couponID, &redemption.CouponID); err != nil {
		return err
	}
	if err := parseUUIDInto(sessionID, &redemption.SessionID); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(redemption).Error
}
