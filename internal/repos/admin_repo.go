package repos

import (
	"context"

	"boutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.GetContext(ctx, &a, `SELECT username, COALESCE(password,'') AS password FROM admin WHERE username=?`, username)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateHash replaces the stored password hash. It reports sql.ErrNoRows
// when the user does not exist.
func (r *AdminRepo) UpdateHash(ctx context.Context, username, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admin SET password=? WHERE username=?`, hash, username)
	if err != nil {
		return err
	}
	return expectOne(res)
}
