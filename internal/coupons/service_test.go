package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo serves coupons by code and records balance debits.
type fakeRepo struct {
	coupons map[string]*Coupon
	debits  []Settlement
}

func newFakeRepo(coupons ...*Coupon) *fakeRepo {
	repo := &fakeRepo{coupons: make(map[string]*Coupon)}
	for _, c := range coupons {
		repo.coupons[c.Code] = c
	}
	return repo
}

func (f *fakeRepo) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	f.coupons[coupon.Code] = coupon
	return nil
}

func (f *fakeRepo) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	coupon, ok := f.coupons[code]
	if !ok {
		return nil, ErrCouponNotFound
	}
	copied := *coupon
	return &copied, nil
}

func (f *fakeRepo) GetAllCoupons(ctx context.Context) ([]Coupon, error) {
	var list []Coupon
	for _, c := range f.coupons {
		list = append(list, *c)
	}
	return list, nil
}

func (f *fakeRepo) UpdateCoupon(ctx context.Context, coupon *Coupon) error {
	f.coupons[coupon.Code] = coupon
	return nil
}

func (f *fakeRepo) DebitBalance(ctx context.Context, tx *gorm.DB, couponID, sessionID string, amount int64) error {
	for _, c := range f.coupons {
		if c.ID.String() == couponID {
			if c.Balance < amount {
				return ErrInsufficientBalance
			}
			c.Balance -= amount
			f.debits = append(f.debits, Settlement{Code: c.Code, Amount: amount})
			return nil
		}
	}
	return ErrCouponNotFound
}

func expiry(t time.Time) *time.Time {
	return &t
}

func TestValidate_Rejections(t *testing.T) {
	now := time.Now()

	repo := newFakeRepo(
		&Coupon{ID: uuid.New(), Code: "WELCOME10", Type: TypePercentage, Value: 10, Active: true},
		&Coupon{ID: uuid.New(), Code: "EXPIRED25", Type: TypePercentage, Value: 25, Active: true, ExpiresAt: expiry(now.Add(-time.Hour))},
		&Coupon{ID: uuid.New(), Code: "RETIRED", Type: TypeFixed, Value: 50000, Active: false},
		&Coupon{ID: uuid.New(), Code: "FLAT50K", Type: TypeFixed, Value: 50000, MinPurchase: 200000, Active: true},
		&Coupon{ID: uuid.New(), Code: "DRAINED", Type: TypeStoredBalance, Balance: 0, Active: true},
	)
	svc := NewService(repo)

	tests := []struct {
		name     string
		code     string
		subtotal int64
		applied  []string
		wantErr  error
	}{
		{"unknown code", "NOSUCH", 100000, nil, ErrCouponNotFound},
		{"expired coupon", "EXPIRED25", 100000, nil, ErrCouponExpired},
		{"deactivated coupon", "RETIRED", 100000, nil, ErrCouponInactive},
		{"below minimum purchase", "FLAT50K", 150000, nil, ErrBelowMinimum},
		{"already applied", "WELCOME10", 100000, []string{"WELCOME10"}, ErrAlreadyApplied},
		{"already applied, different casing", "welcome10", 100000, []string{"WELCOME10"}, ErrAlreadyApplied},
		{"drained stored balance", "DRAINED", 100000, nil, ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon, err := svc.Validate(context.Background(), tt.code, tt.subtotal, tt.applied)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, coupon)
		})
	}
}

func TestValidate_AcceptsUsableCoupon(t *testing.T) {
	repo := newFakeRepo(
		&Coupon{ID: uuid.New(), Code: "FLAT50K", Type: TypeFixed, Value: 50000, MinPurchase: 200000, Active: true},
	)
	svc := NewService(repo)

	coupon, err := svc.Validate(context.Background(), " flat50k ", 200000, []string{"WELCOME10"})
	require.NoError(t, err)
	assert.Equal(t, "FLAT50K", coupon.Code)
	assert.Equal(t, int64(50000), coupon.Value)
}

func TestSettle_DebitsStoredBalanceOnly(t *testing.T) {
	gift := &Coupon{ID: uuid.New(), Code: "GIFT", Type: TypeStoredBalance, Balance: 150000, Active: true}
	pct := &Coupon{ID: uuid.New(), Code: "WELCOME10", Type: TypePercentage, Value: 10, Active: true}
	repo := newFakeRepo(gift, pct)
	svc := NewService(repo)

	err := svc.Settle(context.Background(), nil, uuid.New().String(), []Settlement{
		{CouponID: pct.ID, Code: pct.Code, Type: TypePercentage, Amount: 10000},
		{CouponID: gift.ID, Code: gift.Code, Type: TypeStoredBalance, Amount: 120000},
	})
	require.NoError(t, err)

	// Only the gift card balance moved.
	require.Len(t, repo.debits, 1)
	assert.Equal(t, "GIFT", repo.debits[0].Code)
	assert.Equal(t, int64(120000), repo.debits[0].Amount)
	assert.Equal(t, int64(30000), gift.Balance)
}

func TestSettle_RefusesOverdraw(t *testing.T) {
	gift := &Coupon{ID: uuid.New(), Code: "GIFT", Type: TypeStoredBalance, Balance: 50000, Active: true}
	repo := newFakeRepo(gift)
	svc := NewService(repo)

	err := svc.Settle(context.Background(), nil, uuid.New().String(), []Settlement{
		{CouponID: gift.ID, Code: gift.Code, Type: TypeStoredBalance, Amount: 120000},
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(50000), gift.Balance)
}
