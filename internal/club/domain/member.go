package domain

import "time"

type Member struct {
	ID                  string
	ClubID              string
	Name                string
	Email               string
	AvatarURL           string
	IDPhotoURL          string
	IDPhotoKey          string // blob storage key of the identity photo
	Vetoed              bool
	MembershipExpiresAt *time.Time
	CreatedAt           time.Time
}

type MemberStatus string

const (
	MemberStatusVetoed  MemberStatus = "VETOED"
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusExpired MemberStatus = "EXPIRED"
)

// Status derives the member's standing at now. A veto overrides everything,
// then an expiry in the future means active. Members who never bought a
// membership are expired.
func (m Member) Status(now time.Time) MemberStatus {
	if m.Vetoed {
		return MemberStatusVetoed
	}
	if m.MembershipExpiresAt != nil && m.MembershipExpiresAt.After(now) {
		return MemberStatusActive
	}
	return MemberStatusExpired
}
