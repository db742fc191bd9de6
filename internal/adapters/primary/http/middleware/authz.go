package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
)

// RequireAction gates a route on the role table for the given action. The
// caller's role comes from the JWT claims placed in the context by
// JWTMiddleware, so this must be mounted after it. Requests from the wrong
// role never reach the service layer.
func RequireAction(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				writeAuthError(w, "Authentication required")
				return
			}

			if !claims.Role.Can(action) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": domain.DenialReason(action),
					"code":  "PERMISSION_DENIED",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
