package office

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/office/entity"
	officerepo "github.com/estately/service-listing-go/internal/office/repo"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var ErrNotFound = errors.New("estate office not found")

type Service struct {
	repo *officerepo.OfficeRepo
}

func NewService(db *sqlx.DB, r *officerepo.OfficeRepo) *Service {
	if r == nil {
		r = officerepo.NewOfficeRepo(db)
	}
	return &Service{repo: r}
}

type CreateInput struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Image   *string `json:"image"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Office, error) {
	o := &entity.Office{
		ID:        utilities.NewKSUID(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Image:     in.Image,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Office, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *Service) List(ctx context.Context) ([]*entity.Office, error) {
	return s.repo.List(ctx)
}

type PatchInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Image   *string `json:"image"`
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (*entity.Office, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		o.Name = *in.Name
	}
	if in.Address != nil {
		o.Address = *in.Address
	}
	if in.Phone != nil {
		o.Phone = *in.Phone
	}
	if in.Image != nil {
		o.Image = in.Image
	}
	rows, err := s.repo.Update(ctx, o)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
