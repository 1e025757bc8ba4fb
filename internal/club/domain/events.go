package domain

import "time"

const EventMembershipSold = "membership.sold"

// MembershipSold is published after a checkout that included a membership
// item. The membership worker turns it into a new expiry on the member.
// Quantity is the number of durations sold; memberships sell in whole units.
type MembershipSold struct {
	EventID  string    `json:"event_id"`
	ClubID   string    `json:"club_id"`
	MemberID string    `json:"member_id"`
	ItemID   string    `json:"item_id"`
	Duration string    `json:"duration"`
	Quantity int       `json:"quantity"`
	SoldAt   time.Time `json:"sold_at"`
}
