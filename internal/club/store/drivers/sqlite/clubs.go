package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
)

type clubsRepo struct {
	db dbtx
}

const clubColumns = `id, name, admin_user_id, created_at`

func (r *clubsRepo) CreateClub(ctx context.Context, c domain.Club) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clubs (`+clubColumns+`) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.AdminUserID, c.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *clubsRepo) GetClubByID(ctx context.Context, id string) (domain.Club, error) {
	return scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = ?`, id))
}

func (r *clubsRepo) GetClubByAdmin(ctx context.Context, userID string) (domain.Club, error) {
	return scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE admin_user_id = ?`, userID))
}

func scanClub(row rowScanner) (domain.Club, error) {
	var c domain.Club
	if err := row.Scan(&c.ID, &c.Name, &c.AdminUserID, &c.CreatedAt); err != nil {
		return domain.Club{}, mapNotFound(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}
