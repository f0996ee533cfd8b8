package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/favorite/entity"
)

// FavoriteRepo persists (user, property) pairs.
type FavoriteRepo struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// EnsureSchema creates the favorites table and its compound unique
// index (idempotent). The index is the duplicate-prevention mechanism:
// two concurrent identical inserts are serialized by the store, never
// by an in-process check.
func (r *FavoriteRepo) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS favorites (
			id varchar(32) PRIMARY KEY,
			user_id varchar(32) NOT NULL,
			property_id varchar(32) NOT NULL,
			created_at timestamp NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_user_property
			ON favorites(user_id, property_id)`,
	}
	for _, q := range ddl {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Insert adds a relation row. A unique-constraint rejection is returned
// as-is for the service to classify.
func (r *FavoriteRepo) Insert(ctx context.Context, f *entity.Favorite) error {
	q := r.db.Rebind(`INSERT INTO favorites (id, user_id, property_id, created_at) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	return err
}

// Delete removes the relation and reports how many rows went away.
func (r *FavoriteRepo) Delete(ctx context.Context, userID, propertyID string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM favorites WHERE user_id = ? AND property_id = ?`)
	res, err := r.db.ExecContext(ctx, q, userID, propertyID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	q := r.db.Rebind(`SELECT id, user_id, property_id, created_at FROM favorites
		WHERE user_id = ? ORDER BY created_at`)
	rows := []*entity.Favorite{}
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}
