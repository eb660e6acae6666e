// File: internal/middleware/constants.go
package middleware

import (
	"context"

	"github.com/iyunix/go-workshopchat/internal/domain"
)

// Context keys for middleware communication
type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// AuthCookieName is the cookie checked when no Authorization header is sent.
const AuthCookieName = "auth_token"

// Logger is the logging surface the middleware needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Identity returns the caller stored by RequireAuth.
func Identity(ctx context.Context) (string, domain.Role, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.RoleUnknown, false
	}
	role, ok := ctx.Value(RoleKey).(domain.Role)
	if !ok || !role.Valid() {
		return "", domain.RoleUnknown, false
	}
	return userID, role, true
}

// WithIdentity stores the caller in ctx.
func WithIdentity(ctx context.Context, userID string, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}
