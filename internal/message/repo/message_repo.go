package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/message/entity"
)

type MessageRepo struct {
	db *sqlx.DB
}

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id varchar(32) PRIMARY KEY,
			office_id varchar(32) NOT NULL,
			property_id varchar(32) NOT NULL,
			sender_id varchar(32) NOT NULL DEFAULT '',
			body text NOT NULL DEFAULT '',
			read boolean NOT NULL DEFAULT false,
			created_at timestamp NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_office_property ON messages(office_id, property_id)`,
	}
	for _, q := range ddl {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *MessageRepo) Insert(ctx context.Context, m *entity.Message) error {
	q := r.db.Rebind(`INSERT INTO messages (id, office_id, property_id, sender_id, body, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, m.ID, m.OfficeID, m.PropertyID, m.SenderID, m.Body, m.Read, m.CreatedAt)
	return err
}

// MarkRead flips the read flag and reports how many rows changed.
func (r *MessageRepo) MarkRead(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`UPDATE messages SET read = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, true, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *MessageRepo) ListByThread(ctx context.Context, officeID, propertyID string) ([]*entity.Message, error) {
	q := r.db.Rebind(`SELECT id, office_id, property_id, sender_id, body, read, created_at
		FROM messages WHERE office_id = ? AND property_id = ? ORDER BY created_at, id`)
	rows := []*entity.Message{}
	if err := r.db.SelectContext(ctx, &rows, q, officeID, propertyID); err != nil {
		return nil, err
	}
	return rows, nil
}
