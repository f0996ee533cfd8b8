package account

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/estately/service-listing-go/internal/account/entity"
	accountrepo "github.com/estately/service-listing-go/internal/account/repo"
	"github.com/estately/service-listing-go/internal/auth"
	"github.com/estately/service-listing-go/pkg/database"
	"github.com/estately/service-listing-go/pkg/utilities"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrNotFound          = errors.New("account not found")
)

// Service is the account registry: it creates and looks up user
// records and owns the login flow. The store handle is injected at
// construction; there is no process-wide client.
type Service struct {
	repo *accountrepo.AccountRepo
}

func NewService(db *sqlx.DB, r *accountrepo.AccountRepo) *Service {
	if r == nil {
		r = accountrepo.NewAccountRepo(db)
	}
	return &Service{repo: r}
}

// Register creates an account with fresh salt material. The username
// pre-check is advisory (it produces the descriptive duplicate error);
// the UNIQUE constraint on the table catches the race it leaves open.
func (s *Service) Register(ctx context.Context, username, password string) (*entity.Account, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	salt := uuid.NewString()
	split, err := randomSplit(len(salt))
	if err != nil {
		return nil, err
	}
	a := &entity.Account{
		ID:           utilities.NewKSUID(),
		Username:     username,
		PasswordHash: auth.Hash(password, salt, split),
		Salt:         salt,
		SaltSplit:    split,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return a, nil
}

// Login authenticates (username, password). An unknown username is
// auto-provisioned: first login with a new name always succeeds and
// creates a bare account with no password material. A known username
// is verified by recomputing the hash with the stored salt and split
// and comparing against the stored digest; a failed login never
// mutates the record.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.Account, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		a = &entity.Account{
			ID:        utilities.NewKSUID(),
			Username:  username,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, a); err != nil {
			if database.IsUniqueViolation(err) {
				// lost the race to a concurrent registration
				return nil, ErrBadCredentials
			}
			return nil, err
		}
		return a, nil
	}
	if err != nil {
		return nil, err
	}
	if a.PasswordHash == "" {
		// provisioned on an earlier login, nothing to verify against
		return a, nil
	}
	if auth.Hash(password, a.Salt, a.SaltSplit) != a.PasswordHash {
		return nil, ErrBadCredentials
	}
	return a, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context) ([]*entity.Account, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies the non-nil fields. A new password gets fresh
// salt material; the old split index is never reused.
func (s *Service) UpdateProfile(ctx context.Context, id string, username, password *string) (*entity.Account, error) {
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if username != nil {
		a.Username = *username
	}
	if password != nil {
		salt := uuid.NewString()
		split, err := randomSplit(len(salt))
		if err != nil {
			return nil, err
		}
		a.Salt = salt
		a.SaltSplit = split
		a.PasswordHash = auth.Hash(*password, salt, split)
	}
	rows, err := s.repo.Update(ctx, a)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return a, nil
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

// Resolve implements auth.IdentityResolver for both strategies.
func (s *Service) Resolve(ctx context.Context, id string) (*auth.Identity, error) {
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{ID: a.ID, Username: a.Username}, nil
}

// randomSplit picks a uniform split index in [0, n] inclusive.
func randomSplit(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n+1)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
