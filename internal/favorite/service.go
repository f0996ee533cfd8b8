package favorite

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/favorite/entity"
	favoriterepo "github.com/estately/service-listing-go/internal/favorite/repo"
	"github.com/estately/service-listing-go/pkg/database"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var (
	ErrDuplicate = errors.New("property already favorited")
	ErrNotFound  = errors.New("favorite not found")
)

type Service struct {
	repo *favoriterepo.FavoriteRepo
}

func NewService(db *sqlx.DB, r *favoriterepo.FavoriteRepo) *Service {
	if r == nil {
		r = favoriterepo.NewFavoriteRepo(db)
	}
	return &Service{repo: r}
}

// Add inserts the relation. The store's unique index decides whether
// the pair already exists.
func (s *Service) Add(ctx context.Context, userID, propertyID string) (*entity.Favorite, error) {
	f := &entity.Favorite{
		ID:         utilities.NewKSUID(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, f); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, userID, propertyID string) error {
	rows, err := s.repo.Delete(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}
