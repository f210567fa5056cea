package converter

import (
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
)

// SessionToAuthResponse converts a provider session to the auth response DTO.
// The access token stays server-side in the session store.
func SessionToAuthResponse(session *entity.Session, redirectTo string) *dto.AuthResponse {
	if session == nil {
		return &dto.AuthResponse{RedirectTo: redirectTo}
	}
	return &dto.AuthResponse{
		User:       session.User,
		RedirectTo: redirectTo,
		ExpiresIn:  session.ExpiresIn,
	}
}
