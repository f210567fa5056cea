package entity

import (
	"time"

	"telesalud-admin/internal/domain/schema"

	"github.com/google/uuid"
)

// AdminUser is the credential table used by the local auth provider when the
// service runs against a self-hosted Postgres instead of the hosted backend.
type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Username  string    `gorm:"type:varchar(255);not null" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminUser) TableName() string {
	return schema.TableAdminUser
}

// CurrentUser mirrors the remote session on the client side.
type CurrentUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// IsEmpty reports whether nobody is signed in.
func (u CurrentUser) IsEmpty() bool {
	return u.Email == "" && u.Username == ""
}

// Session is what an auth provider hands back after a successful sign-in.
// ExpiresAt is the access token's expiry in unix seconds; zero means unknown.
type Session struct {
	AccessToken  string      `json:"access_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	ExpiresIn    int64       `json:"expires_in,omitempty"`
	ExpiresAt    int64       `json:"expires_at,omitempty"`
	User         CurrentUser `json:"user"`
}

// StampExpiry derives ExpiresAt from ExpiresIn when the provider sent only
// the relative lifetime.
func (s *Session) StampExpiry(now time.Time) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = now.Unix() + s.ExpiresIn
	}
}

// ExpiredAt reports whether the access token is no longer usable at now,
// counting leeway as already expired.
func (s *Session) ExpiredAt(now time.Time, leeway time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return !now.Add(leeway).Before(time.Unix(s.ExpiresAt, 0))
}

// AuthEvent is a session-change notification.
type AuthEvent string

const (
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventInitialSession AuthEvent = "INITIAL_SESSION"
)

// PersonaDNI is the national registry record returned by the identity lookup.
type PersonaDNI struct {
	Nombres           string `json:"nombres"`
	ApellidoPaterno   string `json:"apellidoPaterno"`
	ApellidoMaterno   string `json:"apellidoMaterno"`
	TipoDocumento     string `json:"tipoDocumento"`
	NumeroDocumento   string `json:"numeroDocumento"`
	DigitoVerificador string `json:"digitoVerificador"`
}
