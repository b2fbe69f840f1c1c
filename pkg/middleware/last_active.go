package middleware

import (
	"context"
	"net/http"

	"github.com/foundic-app/foundic-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateLastActiveMiddleware stamps the authenticated user's last_active_at
// on every request that passes through it. Failures are log-only; presence
// tracking never blocks a request.
func UpdateLastActiveMiddleware(update func(ctx context.Context, userID primitive.ObjectID) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := GetUserFromContext(r.Context()); claims != nil {
				if userID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
					if err := update(r.Context(), userID); err != nil {
						logger.Log.WithError(err).Warn("Failed to update last active timestamp")
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
