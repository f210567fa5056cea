package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
	"telesalud-admin/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = &repository.AuthError{StatusCode: http.StatusBadRequest, Message: "Invalid login credentials"}
	ErrUserAlreadyExists  = &repository.AuthError{StatusCode: http.StatusUnprocessableEntity, Message: "User already registered"}
	ErrOAuthUnsupported   = &repository.AuthError{StatusCode: http.StatusBadRequest, Message: "Federated sign-in requires the hosted auth backend"}
	ErrInvalidToken       = &repository.AuthError{StatusCode: http.StatusUnauthorized, Message: "invalid or expired token"}
	ErrRefreshUnsupported = &repository.AuthError{StatusCode: http.StatusUnauthorized, Message: "Session expired, sign in again"}
)

// LocalAuthService authenticates against the admin_users table and issues
// HS256 tokens shaped like the hosted backend's.
type LocalAuthService struct {
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

func NewLocalAuthService(log *logrus.Logger, userRepo repository.UserRepository, jwtService *jwt.JWTService) repository.AuthProvider {
	return &LocalAuthService{
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *LocalAuthService) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		s.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *LocalAuthService) SignUp(ctx context.Context, email, password, username string) (*entity.Session, error) {
	email = strings.ToLower(email)
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.AdminUser{
		Email:    email,
		Password: string(hashedPassword),
		Username: username,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		s.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return s.issue(user)
}

func (s *LocalAuthService) OAuthURL(provider, redirectTo string) (string, error) {
	return "", ErrOAuthUnsupported
}

// RefreshSession always fails: local tokens carry no refresh token, so an
// expired session signs in again.
func (s *LocalAuthService) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return nil, ErrRefreshUnsupported
}

// SignOut only checks the token; issued tokens expire on their own.
func (s *LocalAuthService) SignOut(ctx context.Context, accessToken string) error {
	if _, err := s.jwtService.ValidateToken(accessToken); err != nil {
		return ErrInvalidToken
	}
	return nil
}

func (s *LocalAuthService) GetUser(ctx context.Context, accessToken string) (*entity.CurrentUser, error) {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &entity.CurrentUser{Email: claims.Email, Username: claims.UserMetadata.Username}, nil
}

func (s *LocalAuthService) issue(user *entity.AdminUser) (*entity.Session, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Username)
	if err != nil {
		s.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	expiry := s.jwtService.GetAccessExpiry()
	return &entity.Session{
		AccessToken: accessToken,
		ExpiresIn:   int64(expiry.Seconds()),
		ExpiresAt:   time.Now().Add(expiry).Unix(),
		User:        entity.CurrentUser{Email: user.Email, Username: user.Username},
	}, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
