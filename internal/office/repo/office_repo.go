package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/office/entity"
)

type OfficeRepo struct {
	db *sqlx.DB
}

func NewOfficeRepo(db *sqlx.DB) *OfficeRepo { return &OfficeRepo{db: db} }

func (r *OfficeRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS estate_offices (
		id varchar(32) PRIMARY KEY,
		name text NOT NULL DEFAULT '',
		address text NOT NULL DEFAULT '',
		phone text NOT NULL DEFAULT '',
		image text,
		created_at timestamp NOT NULL
	)`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *OfficeRepo) Insert(ctx context.Context, o *entity.Office) error {
	q := r.db.Rebind(`INSERT INTO estate_offices (id, name, address, phone, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, o.ID, o.Name, o.Address, o.Phone, o.Image, o.CreatedAt)
	return err
}

func (r *OfficeRepo) GetByID(ctx context.Context, id string) (*entity.Office, error) {
	q := r.db.Rebind(`SELECT id, name, address, phone, image, created_at FROM estate_offices WHERE id = ?`)
	var row entity.Office
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *OfficeRepo) List(ctx context.Context) ([]*entity.Office, error) {
	const q = `SELECT id, name, address, phone, image, created_at FROM estate_offices ORDER BY name`
	rows := []*entity.Office{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OfficeRepo) Update(ctx context.Context, o *entity.Office) (int64, error) {
	q := r.db.Rebind(`UPDATE estate_offices SET name = ?, address = ?, phone = ?, image = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, o.Name, o.Address, o.Phone, o.Image, o.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *OfficeRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM estate_offices WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
