package usecase

import (
	"context"
	"errors"
	"time"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/service"
	"telesalud-admin/pkg/jwt"

	"github.com/sirupsen/logrus"
)

// Where the client goes after a session change.
const (
	RedirectAdmin = "/admin/"
	RedirectLogin = "/login"
)

// An access token this close to expiry is refreshed before it is used.
const expiryLeeway = 30 * time.Second

var (
	ErrNoSession        = errors.New("no browser session")
	ErrUnsupportedEvent = errors.New("unsupported auth event")
)

type AuthUsecase interface {
	Login(ctx context.Context, sid string, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Register signs up; the response carries no user while the provider
	// waits for email confirmation.
	Register(ctx context.Context, sid string, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	OAuthURL(provider string) (string, error)
	// RestoreSession adopts a token the browser obtained on its own, e.g.
	// after a federated sign-in.
	RestoreSession(ctx context.Context, sid string, req *dto.SessionRequest) (*dto.AuthResponse, error)
	// HandleAuthEvent applies a session change to the user store and returns
	// where the client should go next, or "" to stay.
	HandleAuthEvent(ctx context.Context, sid string, event entity.AuthEvent, session *entity.Session) (string, error)
	Logout(ctx context.Context, sid string) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, sid string) (entity.CurrentUser, error)
	// ActiveSession returns the session with a usable access token,
	// refreshing it when it has expired. It returns nil when nobody is
	// signed in or the session could not be renewed; the store is cleared
	// in the latter case.
	ActiveSession(ctx context.Context, sid string) (*entity.Session, error)
}

type authUsecase struct {
	log           *logrus.Logger
	authProvider  repository.AuthProvider
	userStore     *service.UserStore
	tokens        *jwt.JWTService
	oauthRedirect string
	now           func() time.Time
}

// NewAuthUsecase wires the auth flows. tokens verifies access tokens handed
// in by the browser and may be nil when no signing secret is configured.
func NewAuthUsecase(
	log *logrus.Logger,
	authProvider repository.AuthProvider,
	userStore *service.UserStore,
	tokens *jwt.JWTService,
	oauthRedirect string,
) AuthUsecase {
	return &authUsecase{
		log:           log,
		authProvider:  authProvider,
		userStore:     userStore,
		tokens:        tokens,
		oauthRedirect: oauthRedirect,
		now:           time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, sid string, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if sid == "" {
		return nil, ErrNoSession
	}

	// The username field of the login form carries the account email.
	session, err := u.authProvider.SignInWithPassword(ctx, req.Username, req.Password)
	if err != nil {
		u.warnUnlessRejected("Failed to sign in", err)
		return nil, err
	}

	redirect, err := u.HandleAuthEvent(ctx, sid, entity.AuthEventSignedIn, session)
	if err != nil {
		return nil, err
	}
	return converter.SessionToAuthResponse(session, redirect), nil
}

func (u *authUsecase) Register(ctx context.Context, sid string, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if sid == "" {
		return nil, ErrNoSession
	}

	session, err := u.authProvider.SignUp(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		u.warnUnlessRejected("Failed to sign up", err)
		return nil, err
	}
	if session == nil {
		return converter.SessionToAuthResponse(nil, ""), nil
	}

	redirect, err := u.HandleAuthEvent(ctx, sid, entity.AuthEventSignedIn, session)
	if err != nil {
		return nil, err
	}
	return converter.SessionToAuthResponse(session, redirect), nil
}

func (u *authUsecase) OAuthURL(provider string) (string, error) {
	return u.authProvider.OAuthURL(provider, u.oauthRedirect)
}

func (u *authUsecase) RestoreSession(ctx context.Context, sid string, req *dto.SessionRequest) (*dto.AuthResponse, error) {
	if sid == "" {
		return nil, ErrNoSession
	}

	var expiresAt int64
	if u.tokens != nil {
		claims, err := u.tokens.ValidateToken(req.AccessToken)
		if err != nil {
			return nil, service.ErrInvalidToken
		}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Unix()
		}
	}

	user, err := u.authProvider.GetUser(ctx, req.AccessToken)
	if err != nil {
		u.warnUnlessRejected("Failed to resolve session user", err)
		return nil, err
	}

	event := entity.AuthEventInitialSession
	if req.Event != "" {
		event = entity.AuthEvent(req.Event)
	}

	session := &entity.Session{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         *user,
	}
	redirect, err := u.HandleAuthEvent(ctx, sid, event, session)
	if err != nil {
		return nil, err
	}
	return converter.SessionToAuthResponse(session, redirect), nil
}

func (u *authUsecase) HandleAuthEvent(ctx context.Context, sid string, event entity.AuthEvent, session *entity.Session) (string, error) {
	switch event {
	case entity.AuthEventSignedIn, entity.AuthEventInitialSession:
		if session == nil {
			return "", nil
		}
		session.StampExpiry(u.now())
		if err := u.userStore.SetSession(ctx, sid, session); err != nil {
			u.log.Warnf("Failed to store session: %+v", err)
			return "", err
		}
		return RedirectAdmin, nil
	case entity.AuthEventSignedOut:
		if err := u.userStore.Clear(ctx, sid); err != nil {
			u.log.Warnf("Failed to clear session: %+v", err)
			return "", err
		}
		return RedirectLogin, nil
	default:
		return "", ErrUnsupportedEvent
	}
}

// Logout revokes the remote session when there is one and always clears the
// local user.
func (u *authUsecase) Logout(ctx context.Context, sid string) (*dto.AuthResponse, error) {
	session, err := u.userStore.Session(ctx, sid)
	if err != nil {
		u.log.Warnf("Failed to read session: %+v", err)
		return nil, err
	}

	if session != nil && session.AccessToken != "" {
		if err := u.authProvider.SignOut(ctx, session.AccessToken); err != nil {
			u.log.Warnf("Failed to sign out remotely: %+v", err)
		}
	}

	redirect, err := u.HandleAuthEvent(ctx, sid, entity.AuthEventSignedOut, nil)
	if err != nil {
		return nil, err
	}
	return converter.SessionToAuthResponse(nil, redirect), nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, sid string) (entity.CurrentUser, error) {
	user, err := u.userStore.User(ctx, sid)
	if err != nil {
		u.log.Warnf("Failed to read current user: %+v", err)
		return entity.CurrentUser{}, err
	}
	return user, nil
}

func (u *authUsecase) ActiveSession(ctx context.Context, sid string) (*entity.Session, error) {
	user, err := u.userStore.User(ctx, sid)
	if err != nil {
		u.log.Warnf("Failed to read current user: %+v", err)
		return nil, err
	}
	if user.IsEmpty() {
		return nil, nil
	}

	session, err := u.userStore.Session(ctx, sid)
	if err != nil {
		u.log.Warnf("Failed to read session: %+v", err)
		return nil, err
	}
	if session == nil {
		return &entity.Session{User: user}, nil
	}
	if !session.ExpiredAt(u.now(), expiryLeeway) {
		return session, nil
	}

	if session.RefreshToken != "" {
		refreshed, err := u.authProvider.RefreshSession(ctx, session.RefreshToken)
		if err == nil && refreshed != nil && refreshed.AccessToken != "" {
			if refreshed.User.IsEmpty() {
				refreshed.User = user
			}
			refreshed.StampExpiry(u.now())
			if err := u.userStore.SetSession(ctx, sid, refreshed); err != nil {
				u.log.Warnf("Failed to store refreshed session: %+v", err)
				return nil, err
			}
			return refreshed, nil
		}
		if err != nil {
			u.warnUnlessRejected("Failed to refresh session", err)
		}
	}

	if err := u.userStore.Clear(ctx, sid); err != nil {
		u.log.Warnf("Failed to clear expired session: %+v", err)
		return nil, err
	}
	return nil, nil
}

// Provider rejections are user errors, not service failures.
func (u *authUsecase) warnUnlessRejected(msg string, err error) {
	var authErr *repository.AuthError
	if errors.As(err, &authErr) {
		return
	}
	u.log.Warnf("%s: %+v", msg, err)
}
