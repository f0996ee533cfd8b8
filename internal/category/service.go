package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/category/entity"
	categoryrepo "github.com/estately/service-listing-go/internal/category/repo"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var ErrNotFound = errors.New("category not found")

const defaultImage = "https://picsum.photos/200/300"

type Service struct {
	repo *categoryrepo.CategoryRepo
}

func NewService(db *sqlx.DB, r *categoryrepo.CategoryRepo) *Service {
	if r == nil {
		r = categoryrepo.NewCategoryRepo(db)
	}
	return &Service{repo: r}
}

type CreateInput struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	c := &entity.Category{
		ID:        utilities.NewKSUID(),
		Name:      in.Name,
		Image:     in.Image,
		CreatedAt: time.Now().UTC(),
	}
	if c.Image == "" {
		c.Image = defaultImage
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	return s.repo.List(ctx)
}

type PatchInput struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
	rows, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return c, nil
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
