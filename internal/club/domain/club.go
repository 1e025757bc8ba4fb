package domain

import "time"

// Club is a tenant. Everything a club owns lives under its ID.
type Club struct {
	ID          string
	Name        string
	AdminUserID string // User that provisioned the club
	CreatedAt   time.Time
}
