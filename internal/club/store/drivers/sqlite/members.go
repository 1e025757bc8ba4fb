package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
)

type membersRepo struct {
	db dbtx
}

const memberColumns = `id, club_id, name, email, avatar_url, id_photo_url, id_photo_key,
	vetoed, membership_expires_at, created_at`

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	var expires sql.NullTime
	if m.MembershipExpiresAt != nil {
		expires = sql.NullTime{Time: m.MembershipExpiresAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ClubID, m.Name, m.Email, m.AvatarURL, m.IDPhotoURL, m.IDPhotoKey,
		m.Vetoed, expires, m.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *membersRepo) GetMember(ctx context.Context, clubID, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE club_id = ? AND id = ?`, clubID, id)
	return scanMember(row)
}

func (r *membersRepo) ListMembers(ctx context.Context, clubID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE club_id = ? ORDER BY created_at DESC, id DESC`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membersRepo) SetVetoed(ctx context.Context, clubID, id string, vetoed bool) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE members SET vetoed = ? WHERE club_id = ? AND id = ?`, vetoed, clubID, id))
}

func (r *membersRepo) SetMembershipExpiry(ctx context.Context, clubID, id string, expiresAt time.Time) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE members SET membership_expires_at = ? WHERE club_id = ? AND id = ?`,
		expiresAt.UTC(), clubID, id))
}

func scanMember(row rowScanner) (domain.Member, error) {
	var (
		m       domain.Member
		expires sql.NullTime
	)
	err := row.Scan(&m.ID, &m.ClubID, &m.Name, &m.Email, &m.AvatarURL, &m.IDPhotoURL, &m.IDPhotoKey,
		&m.Vetoed, &expires, &m.CreatedAt)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	m.MembershipExpiresAt = mapNullTimePtr(expires)
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}
