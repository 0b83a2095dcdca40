package dto

import (
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// RegisterRequest describes sign-up payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse reports whether a bearer token is held.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// ProfileUpdateRequest carries editable profile fields.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ProfileResponse describes the signed-in customer.
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProfileResponse maps domain profile to response.
func NewProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{ID: p.ID, Email: p.Email, Name: p.Name, Phone: p.Phone, CreatedAt: p.CreatedAt}
}

// ErrorResponse carries a failure description.
type ErrorResponse struct {
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}
