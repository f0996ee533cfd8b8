package message

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/message/entity"
	messagerepo "github.com/estately/service-listing-go/internal/message/repo"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var ErrNotFound = errors.New("message not found")

type Service struct {
	repo *messagerepo.MessageRepo
}

func NewService(db *sqlx.DB, r *messagerepo.MessageRepo) *Service {
	if r == nil {
		r = messagerepo.NewMessageRepo(db)
	}
	return &Service{repo: r}
}

// Send stores a message in the (office, property) thread.
func (s *Service) Send(ctx context.Context, officeID, propertyID, senderID, body string) (*entity.Message, error) {
	m := &entity.Message{
		ID:         utilities.NewSnowflakeID(),
		OfficeID:   officeID,
		PropertyID: propertyID,
		SenderID:   senderID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	rows, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListThread(ctx context.Context, officeID, propertyID string) ([]*entity.Message, error) {
	return s.repo.ListByThread(ctx, officeID, propertyID)
}
