package customers

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/shared/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerExists     = errors.New("customer already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, customerID string, req *ChangePasswordRequest) error
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	UpdateTier(ctx context.Context, customerID string, tier MembershipTier) error

	// Loyalty points (consumed by the booking session flow)
	RedeemPoints(ctx context.Context, customerID string, points int64) error
	AwardPoints(ctx context.Context, customerID string, points int64) error
}

type service struct {
	repo   Repository
	config *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Check if customer already exists
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCustomerExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      RoleCustomer,
		Tier:      TierBase,
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(customer.ID.String(), customer.Email, string(customer.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Customer:     toCustomerResponse(customer),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	customer, err := s.repo.GetCustomerByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrCustomerNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(customer.ID.String(), customer.Email, string(customer.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Customer:     toCustomerResponse(customer),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verify customer still exists
	customer, err := s.repo.GetCustomerByID(ctx, claims.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	return s.generateTokenPair(customer.ID.String(), customer.Email, string(customer.Role))
}

func (s *service) ChangePassword(ctx context.Context, customerID string, req *ChangePasswordRequest) error {
	customer, err := s.repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return ErrCustomerNotFound
	}

	// Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateCustomerPassword(ctx, customerID, string(hashedPassword))
}

func (s *service) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return s.repo.GetCustomerByID(ctx, customerID)
}

func (s *service) UpdateTier(ctx context.Context, customerID string, tier MembershipTier) error {
	return s.repo.UpdateCustomerTier(ctx, customerID, tier)
}

func (s *service) RedeemPoints(ctx context.Context, customerID string, points int64) error {
	if points <= 0 {
		return nil
	}
	return s.repo.DeductPoints(ctx, customerID, points)
}

func (s *service) AwardPoints(ctx context.Context, customerID string, points int64) error {
	if points <= 0 {
		return nil
	}
	return s.repo.AddPoints(ctx, customerID, points)
}

func (s *service) generateTokenPair(customerID, email, role string) (*TokenPair, error) {
	now := time.Now()

	accessClaims := JWTClaims{
		CustomerID: customerID,
		Email:      email,
		Role:       role,
		Type:       "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "cinebook",
			Subject:   customerID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		CustomerID: customerID,
		Email:      email,
		Role:       role,
		Type:       "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "cinebook",
			Subject:   customerID,
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
