package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/stretchr/testify/require"
)

func TestMemberStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		member domain.Member
		want   domain.MemberStatus
	}{
		{"never bought", domain.Member{}, domain.MemberStatusExpired},
		{"active", domain.Member{MembershipExpiresAt: &future}, domain.MemberStatusActive},
		{"lapsed", domain.Member{MembershipExpiresAt: &past}, domain.MemberStatusExpired},
		{"expires exactly now", domain.Member{MembershipExpiresAt: &now}, domain.MemberStatusExpired},
		{"veto wins over active", domain.Member{Vetoed: true, MembershipExpiresAt: &future}, domain.MemberStatusVetoed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.member.Status(now))
		})
	}
}
