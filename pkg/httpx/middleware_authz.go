package httpx

import (
	"net/http"
	"slices"
)

// RequireClub rejects callers whose token is not bound to a club yet.
func RequireClub() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := ClaimsFromContext(r.Context())
			if !ok || c.ClubID == "" {
				WriteJSON(w, http.StatusForbidden, errorBody{
					Kind:    "permission-denied",
					Message: "caller is not a member of any club",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects callers whose role claim is not one of roles.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := ClaimsFromContext(r.Context())
			if !ok || !slices.Contains(roles, c.Role) {
				WriteJSON(w, http.StatusForbidden, errorBody{
					Kind:    "permission-denied",
					Message: "insufficient role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
