package customers

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*Customer, error)
	UpdateCustomerPassword(ctx context.Context, customerID string, hashedPassword string) error
	UpdateCustomerTier(ctx context.Context, customerID string, tier MembershipTier) error
	EmailExists(ctx context.Context, email string) (bool, error)

	// Loyalty point balance operations
	DeductPoints(ctx context.Context, customerID string, points int64) error
	AddPoints(ctx context.Context, customerID string, points int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateCustomer(ctx context.Context, customer *Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return err
	}
	return nil
}

func (r *repository) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) UpdateCustomerPassword(ctx context.Context, customerID string, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", customerID).
		Update("password", hashedPassword).Error
}

func (r *repository) UpdateCustomerTier(ctx context.Context, customerID string, tier MembershipTier) error {
	result := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", customerID).
		Update("tier", tier)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// DeductPoints removes points from the balance. The guarded UPDATE makes an
// over-redemption impossible even if the balance changed since it was read.
func (r *repository) DeductPoints(ctx context.Context, customerID string, points int64) error {
	result := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ? AND loyalty_points >= ?", customerID, points).
		Update("loyalty_points", gorm.Expr("loyalty_points - ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func (r *repository) AddPoints(ctx context.Context, customerID string, points int64) error {
	return r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", customerID).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}
