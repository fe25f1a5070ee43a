package customers

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Customer defines the account record, including loyalty state used by the
// discount engine.
type Customer struct {
	ID            uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName     string         `json:"first_name" gorm:"not null"`
	LastName      string         `json:"last_name" gorm:"not null"`
	Password      string         `json:"-" gorm:"not null"` // hide in json
	Role          Role           `json:"role" gorm:"not null;default:'CUSTOMER'"`
	Email         string         `json:"email" gorm:"uniqueIndex;not null"`
	Tier          MembershipTier `json:"tier" gorm:"type:varchar(10);not null;default:'BASE'"`
	LoyaltyPoints int64          `json:"loyalty_points" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleCustomer), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// MembershipTier is the loyalty level determining discount percentages.
// Tiers form a total order: BASE < MEMBER < VIP < VVIP.
type MembershipTier string

const (
	TierBase   MembershipTier = "BASE"
	TierMember MembershipTier = "MEMBER"
	TierVIP    MembershipTier = "VIP"
	TierVVIP   MembershipTier = "VVIP"
)

func IsValidTier(tier string) bool {
	switch tier {
	case string(TierBase), string(TierMember), string(TierVIP), string(TierVVIP):
		return true
	default:
		return false
	}
}

// JWTClaims carries the token payload for access and refresh tokens
type JWTClaims struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Type       string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
