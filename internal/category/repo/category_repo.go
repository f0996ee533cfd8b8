package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/category/entity"
)

type CategoryRepo struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS categories (
		id varchar(32) PRIMARY KEY,
		name text NOT NULL DEFAULT '',
		image text NOT NULL DEFAULT '',
		created_at timestamp NOT NULL
	)`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *CategoryRepo) Insert(ctx context.Context, c *entity.Category) error {
	q := r.db.Rebind(`INSERT INTO categories (id, name, image, created_at) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Image, c.CreatedAt)
	return err
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	q := r.db.Rebind(`SELECT id, name, image, created_at FROM categories WHERE id = ?`)
	var row entity.Category
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const q = `SELECT id, name, image, created_at FROM categories ORDER BY name`
	rows := []*entity.Category{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (int64, error) {
	q := r.db.Rebind(`UPDATE categories SET name = ?, image = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Image, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM categories WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
