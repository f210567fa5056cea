package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
)

// AuthClient is the GoTrue implementation of repository.AuthProvider.
type AuthClient struct {
	*Client
}

func NewAuthClient(c *Client) repository.AuthProvider {
	return &AuthClient{Client: c}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         *gotrueUser `json:"user"`
}

// GoTrue reports errors under several keys depending on the endpoint.
type gotrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (u *gotrueUser) toCurrentUser() entity.CurrentUser {
	return entity.CurrentUser{Email: u.Email, Username: u.UserMetadata.Username}
}

func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session gotrueSession
	if err := c.call(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body, "", &session); err != nil {
		return nil, err
	}
	return toSession(&session), nil
}

func (c *AuthClient) SignUp(ctx context.Context, email, password, username string) (*entity.Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}
	var session gotrueSession
	if err := c.call(ctx, http.MethodPost, "/auth/v1/signup", body, "", &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, nil
	}
	return toSession(&session), nil
}

func (c *AuthClient) OAuthURL(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", &repository.AuthError{StatusCode: http.StatusBadRequest, Message: "provider is required"}
	}
	values := url.Values{}
	values.Set("provider", provider)
	if redirectTo != "" {
		values.Set("redirect_to", redirectTo)
	}
	return c.baseURL + "/auth/v1/authorize?" + values.Encode(), nil
}

func (c *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var session gotrueSession
	if err := c.call(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", body, "", &session); err != nil {
		return nil, err
	}
	return toSession(&session), nil
}

func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.call(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken, nil)
}

func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*entity.CurrentUser, error) {
	var user gotrueUser
	if err := c.call(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken, &user); err != nil {
		return nil, err
	}
	current := user.toCurrentUser()
	return &current, nil
}

func (c *AuthClient) call(ctx context.Context, method, path string, body interface{}, bearer string, dest interface{}) error {
	req, err := c.newRequest(ctx, method, path, body, bearer)
	if err != nil {
		return err
	}

	resp, raw, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAuthError(resp.StatusCode, raw)
	}
	if dest == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	return nil
}

func toSession(s *gotrueSession) *entity.Session {
	session := &entity.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		ExpiresAt:    s.ExpiresAt,
	}
	if s.User != nil {
		session.User = s.User.toCurrentUser()
	}
	return session
}

func decodeAuthError(status int, raw []byte) error {
	var body gotrueError
	_ = json.Unmarshal(raw, &body)

	msg := body.ErrorDescription
	for _, candidate := range []string{body.Msg, body.Message, body.Error} {
		if msg == "" {
			msg = candidate
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &repository.AuthError{StatusCode: status, Message: msg}
}
