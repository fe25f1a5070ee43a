package customers

import "time"

// authentication response
type AuthResponse struct {
	Customer     CustomerResponse `json:"customer"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int64            `json:"expires_in"`
}

// customer data in responses (without sensitive info)
type CustomerResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Tier          string    `json:"tier"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Role:          string(c.Role),
		Tier:          string(c.Tier),
		LoyaltyPoints: c.LoyaltyPoints,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
