package middleware

import (
	"context"
	"net/http"
	"time"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionIDKey   contextKey = "session_id"
	CurrentUserKey contextKey = "current_user"
)

// SessionMiddleware gives every browser a session id cookie. All per-user
// state is keyed by it.
type SessionMiddleware struct {
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewSessionMiddleware(cookieName string, ttl time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sid = cookie.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		// Re-issued on every request so the expiry slides with activity.
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(m.ttl.Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), SessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionSource resolves the signed-in session of a browser session id.
type SessionSource interface {
	ActiveSession(ctx context.Context, sid string) (*entity.Session, error)
}

// AuthMiddleware guards the admin routes.
type AuthMiddleware struct {
	log      *logrus.Logger
	sessions SessionSource
}

func NewAuthMiddleware(log *logrus.Logger, sessions SessionSource) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log,
		sessions: sessions,
	}
}

// RequireUser lets the request through only when the session has a current
// user with a live access token, and hands that token to the remote store
// calls. An expired session that cannot be refreshed is sent to login.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid, _ := GetSessionIDFromContext(ctx)

		session, err := m.sessions.ActiveSession(ctx, sid)
		if err != nil {
			m.log.Warnf("Failed to validate session: %+v", err)
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if session == nil || session.User.IsEmpty() {
			response.Redirect(w, usecase.RedirectLogin)
			return
		}

		if session.AccessToken != "" {
			ctx = repository.WithAccessToken(ctx, session.AccessToken)
		}
		ctx = context.WithValue(ctx, CurrentUserKey, session.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts the browser session id from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionIDKey).(string)
	return sid, ok
}

// GetCurrentUserFromContext extracts the guarded request's user from context
func GetCurrentUserFromContext(ctx context.Context) (entity.CurrentUser, bool) {
	user, ok := ctx.Value(CurrentUserKey).(entity.CurrentUser)
	return user, ok
}
