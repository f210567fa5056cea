package repository

import "context"

type contextKey string

const accessTokenKey contextKey = "access_token"

// WithAccessToken attaches the signed-in user's token so table calls run
// with the user's row-level permissions.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromContext returns the token set by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok && token != ""
}
