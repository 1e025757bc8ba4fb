package domain

import "time"

// Roles a principal can hold inside a club.
const (
	RoleAdministrator = "administrator"
	RoleGuest         = "guest"
)

// Principal binds a user to exactly one club with a role. It is what ends up
// in the club_id and role claims of a session token.
type Principal struct {
	UserID    string
	ClubID    string
	Role      string
	UpdatedAt time.Time
}

// Session is the authenticated caller, built from verified token claims and
// handed to every service call. A zero Session is an anonymous caller.
type Session struct {
	UserID   string
	Username string
	ClubID   string
	Role     string
}

func (s Session) Authenticated() bool { return s.UserID != "" }

// HasClub reports whether the caller is bound to a club.
func (s Session) HasClub() bool { return s.ClubID != "" }

func (s Session) IsAdministrator() bool {
	return s.HasClub() && s.Role == RoleAdministrator
}
