package http

import (
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

// sessionFrom builds the caller's session from the verified token claims.
// Anonymous requests get the zero Session, which every service rejects.
func sessionFrom(r *http.Request) domain.Session {
	c, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Session{}
	}
	return domain.Session{
		UserID:   c.Subject,
		Username: c.Username,
		ClubID:   c.ClubID,
		Role:     c.Role,
	}
}
