package dto

import (
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
)

// LoginRequest represents the request body for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries an ID token obtained from Google Sign-In.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// AuthResponse is returned on successful login. The key names match what
// clients persist in local storage.
type AuthResponse struct {
	Token     string       `json:"userToken"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"userData"`
}

// GoogleLoginURLResponse holds the consent URL and the CSRF state to verify on callback.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID         string      `json:"userID"`
	OrganisationID string      `json:"organisationID"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
}

// ToUserResponse converts a domain user to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		OrganisationID: u.OrganisationID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
	}
}

// CreateUserRequest defines the payload for adding a user to the caller's organisation.
type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required,max=120"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=ADMIN COMPTABLE LECTEUR"`
}
