package dto

import (
	"strings"

	"telesalud-admin/internal/domain/entity"
)

// Request DTOs

// LoginRequest carries the login form. Username holds the account email.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=2"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,min=2"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

// SessionRequest hands the server a token obtained by the browser, e.g.
// after a federated sign-in redirect.
type SessionRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token"`
	Event        string `json:"event" validate:"omitempty,oneof=SIGNED_IN INITIAL_SESSION"`
}

// Response DTOs

type AuthResponse struct {
	User       entity.CurrentUser `json:"user"`
	RedirectTo string             `json:"redirect_to,omitempty"`
	ExpiresIn  int64              `json:"expires_in,omitempty"`
}
