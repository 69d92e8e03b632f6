package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const buyerIDKey contextKey = "buyerID"

// BuyerIDFromContext returns the authenticated buyer's ID stored by
// Middleware. The second return is false outside an authenticated request.
func BuyerIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(buyerIDKey).(uint)
	return id, ok
}

// WithBuyerID is exposed for tests that exercise handlers without the full
// middleware chain.
func WithBuyerID(ctx context.Context, buyerID uint) context.Context {
	return context.WithValue(ctx, buyerIDKey, buyerID)
}

// Middleware rejects requests without a valid bearer token and stores the
// token's buyer ID in the request context.
func Middleware(manager *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is missing", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Invalid token format", http.StatusUnauthorized)
				return
			}

			buyerID, err := manager.ValidateToken(tokenString)
			if err != nil {
				logger.Warn("invalid token", zap.Error(err))
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithBuyerID(r.Context(), buyerID)))
		})
	}
}
