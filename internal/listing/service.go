package listing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/listing/entity"
	listingrepo "github.com/estately/service-listing-go/internal/listing/repo"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var ErrNotFound = errors.New("property not found")

// defaultImage mirrors the placeholder applied when a listing is
// created without one.
const defaultImage = "https://picsum.photos/200/300"

type Service struct {
	repo *listingrepo.PropertyRepo
}

func NewService(db *sqlx.DB, r *listingrepo.PropertyRepo) *Service {
	if r == nil {
		r = listingrepo.NewPropertyRepo(db)
	}
	return &Service{repo: r}
}

// CreateInput carries the caller-supplied fields of a new listing.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	CategoryID  string `json:"categoryId"`
	OfficeID    string `json:"officeId"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Property, error) {
	now := time.Now().UTC()
	p := &entity.Property{
		ID:          utilities.NewKSUID(),
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Price:       in.Price,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
		OfficeID:    in.OfficeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Image == "" {
		p.Image = defaultImage
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context) ([]*entity.Property, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, term string) ([]*entity.Property, error) {
	return s.repo.Search(ctx, term)
}

// PatchInput carries optional updates; nil fields stay untouched.
type PatchInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	CategoryID  *string `json:"categoryId"`
	OfficeID    *string `json:"officeId"`
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (*entity.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.OfficeID != nil {
		p.OfficeID = *in.OfficeID
	}
	p.UpdatedAt = time.Now().UTC()
	rows, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return p, nil
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
