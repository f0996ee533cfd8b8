package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/listing/entity"
)

type PropertyRepo struct {
	db *sqlx.DB
}

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// EnsureSchema creates the properties table if it does not exist.
func (r *PropertyRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS properties (
		id varchar(32) PRIMARY KEY,
		title text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		address text NOT NULL DEFAULT '',
		price bigint NOT NULL DEFAULT 0,
		image text NOT NULL DEFAULT '',
		category_id varchar(32) NOT NULL DEFAULT '',
		office_id varchar(32) NOT NULL DEFAULT '',
		created_at timestamp NOT NULL,
		updated_at timestamp NOT NULL
	)`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *PropertyRepo) Insert(ctx context.Context, p *entity.Property) error {
	q := r.db.Rebind(`INSERT INTO properties (id, title, description, address, price, image, category_id, office_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, p.Address, p.Price, p.Image, p.CategoryID, p.OfficeID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	q := r.db.Rebind(`SELECT id, title, description, address, price, image, category_id, office_id, created_at, updated_at
		FROM properties WHERE id = ?`)
	var row entity.Property
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PropertyRepo) List(ctx context.Context) ([]*entity.Property, error) {
	const q = `SELECT id, title, description, address, price, image, category_id, office_id, created_at, updated_at
		FROM properties ORDER BY created_at DESC`
	rows := []*entity.Property{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Search filters on title, description and address with a substring
// match. An empty term returns everything.
func (r *PropertyRepo) Search(ctx context.Context, term string) ([]*entity.Property, error) {
	if term == "" {
		return r.List(ctx)
	}
	pattern := "%" + term + "%"
	q := r.db.Rebind(`SELECT id, title, description, address, price, image, category_id, office_id, created_at, updated_at
		FROM properties WHERE title LIKE ? OR description LIKE ? OR address LIKE ?
		ORDER BY created_at DESC`)
	rows := []*entity.Property{}
	if err := r.db.SelectContext(ctx, &rows, q, pattern, pattern, pattern); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) (int64, error) {
	q := r.db.Rebind(`UPDATE properties SET title = ?, description = ?, address = ?, price = ?, image = ?,
		category_id = ?, office_id = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q,
		p.Title, p.Description, p.Address, p.Price, p.Image, p.CategoryID, p.OfficeID, p.UpdatedAt, p.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM properties WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
