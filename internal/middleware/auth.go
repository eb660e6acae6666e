package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-workshopchat/internal/auth"
)

// RequireAuth validates the bearer token (Authorization header, then the
// auth_token cookie) and stores the caller's user ID and role in the context.
func RequireAuth(secretKey []byte, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(token, secretKey)
			if err != nil {
				logger.Warn("[AuthMiddleware] invalid token", "path", r.URL.Path, "error", err)
				writeUnauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
