package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
)

type principalsRepo struct {
	db dbtx
}

func (r *principalsRepo) UpsertPrincipal(ctx context.Context, p domain.Principal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO principals (user_id, club_id, role, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			club_id    = excluded.club_id,
			role       = excluded.role,
			updated_at = excluded.updated_at`,
		p.UserID, p.ClubID, p.Role, p.UpdatedAt.UTC(),
	)
	return err
}

func (r *principalsRepo) GetPrincipal(ctx context.Context, userID string) (domain.Principal, error) {
	var p domain.Principal
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, club_id, role, updated_at FROM principals WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.ClubID, &p.Role, &p.UpdatedAt)
	if err != nil {
		return domain.Principal{}, mapNotFound(err)
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
