package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID carries the authenticated user's ID, set by the API
// gateway after it validates the session token.
const HeaderUserID = "X-User-ID"

// Auth requires a valid X-User-ID header and puts the user ID into the
// request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing user ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's ID from the context.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
