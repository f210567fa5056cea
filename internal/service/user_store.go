package service

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
)

const (
	sessionKeyUser    = "user"
	sessionKeySession = "auth_session"
)

// UserStore holds the signed-in user of one browser session. An absent
// entry reads as the empty user.
type UserStore struct {
	store repository.SessionStore
}

func NewUserStore(store repository.SessionStore) *UserStore {
	return &UserStore{store: store}
}

func (s *UserStore) User(ctx context.Context, sid string) (entity.CurrentUser, error) {
	var user entity.CurrentUser
	if sid == "" {
		return user, nil
	}
	if _, err := s.store.Get(ctx, sid, sessionKeyUser, &user); err != nil {
		return entity.CurrentUser{}, err
	}
	return user, nil
}

// SetUser replaces the user wholesale.
func (s *UserStore) SetUser(ctx context.Context, sid string, user entity.CurrentUser) error {
	return s.store.Set(ctx, sid, sessionKeyUser, user)
}

// Session returns the stored auth session, or nil when none is stored.
func (s *UserStore) Session(ctx context.Context, sid string) (*entity.Session, error) {
	if sid == "" {
		return nil, nil
	}
	var session entity.Session
	found, err := s.store.Get(ctx, sid, sessionKeySession, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// SetSession stores the auth session and the user it carries.
func (s *UserStore) SetSession(ctx context.Context, sid string, session *entity.Session) error {
	if err := s.store.Set(ctx, sid, sessionKeySession, session); err != nil {
		return err
	}
	return s.SetUser(ctx, sid, session.User)
}

// Clear drops both the user and the auth session.
func (s *UserStore) Clear(ctx context.Context, sid string) error {
	if err := s.store.Delete(ctx, sid, sessionKeySession); err != nil {
		return err
	}
	return s.store.Delete(ctx, sid, sessionKeyUser)
}
