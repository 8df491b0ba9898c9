package middleware

import (
	"context"
	"net/http"

	"github.com/ems-hq/ems-backend-go/internal/domain/auth"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the token claims for the handlers.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimsFromContext returns the verified token claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) map[string]interface{} {
	claims, _ := ctx.Value(claimsKey{}).(map[string]interface{})
	return claims
}

// UserIDFromContext returns the authenticated user's ID, or "" when absent.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ClaimsFromContext(ctx)["user_id"].(string)
	return userID
}
