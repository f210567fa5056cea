package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
)

// AuthProvider is the remote identity service.
type AuthProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	// SignUp may return a nil session when the provider requires email confirmation.
	SignUp(ctx context.Context, email, password, username string) (*entity.Session, error)
	// OAuthURL builds the federated sign-in redirect for provider.
	OAuthURL(provider, redirectTo string) (string, error)
	// RefreshSession trades a refresh token for a new session.
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// GetUser resolves the user behind an access token.
	GetUser(ctx context.Context, accessToken string) (*entity.CurrentUser, error)
}

// IdentityLookup resolves a national id number.
type IdentityLookup interface {
	LookupDNI(ctx context.Context, dni string) (*entity.PersonaDNI, error)
}
