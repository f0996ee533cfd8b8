package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/account/entity"
)

// AccountRepo provides data access for the accounts table using sqlx.
// Queries are written with `?` placeholders and rebound, so the repo
// works against postgres and sqlite3 alike.
type AccountRepo struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// EnsureSchema creates the accounts table if it does not exist
// (idempotent). The UNIQUE constraint on username backs the advisory
// duplicate check in the service.
func (r *AccountRepo) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id varchar(32) PRIMARY KEY,
			username text NOT NULL UNIQUE,
			password_hash text NOT NULL DEFAULT '',
			salt text NOT NULL DEFAULT '',
			salt_split integer NOT NULL DEFAULT 0,
			created_at timestamp NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username)`,
	}
	for _, q := range ddl {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	q := r.db.Rebind(`INSERT INTO accounts (id, username, password_hash, salt, salt_split, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, a.ID, a.Username, a.PasswordHash, a.Salt, a.SaltSplit, a.CreatedAt)
	return err
}

// GetByID fetches a full account row or sql.ErrNoRows.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	q := r.db.Rebind(`SELECT id, username, password_hash, salt, salt_split, created_at
		FROM accounts WHERE id = ?`)
	var row entity.Account
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByUsername fetches by username (case-sensitive) or sql.ErrNoRows.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	q := r.db.Rebind(`SELECT id, username, password_hash, salt, salt_split, created_at
		FROM accounts WHERE username = ?`)
	var row entity.Account
	if err := r.db.GetContext(ctx, &row, q, username); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	const q = `SELECT id, username, password_hash, salt, salt_split, created_at
		FROM accounts ORDER BY created_at`
	rows := []*entity.Account{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update replaces the mutable columns of an account row.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) (int64, error) {
	q := r.db.Rebind(`UPDATE accounts SET username = ?, password_hash = ?, salt = ?, salt_split = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, a.Username, a.PasswordHash, a.Salt, a.SaltSplit, a.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *AccountRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM accounts WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
