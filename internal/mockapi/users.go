package mockapi

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/mockapi/accounts"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailTaken   = accounts.ErrEmailTaken
	errBadLogin     = errors.New("bad credentials")
	errUserNotFound = accounts.ErrNotFound
)

// userStore hashes passwords and applies account rules on top of an
// accounts.Repository.
type userStore struct {
	repo accounts.Repository
	cost int
}

func newUserStore(repo accounts.Repository, cost int) *userStore {
	return &userStore{repo: repo, cost: cost}
}

func (s *userStore) create(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	rec := &accounts.Record{
		User: models.User{
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
			AccountType:  req.AccountType,
			Skills:       []string{},
			Availability: map[string]any{},
			Rating:       "0.00",
			DateJoined:   time.Now().UTC().Format(time.RFC3339),
		},
		Hash: hash,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return models.User{}, err
	}
	return rec.User, nil
}

// authenticate returns the user and its token generation.
func (s *userStore) authenticate(ctx context.Context, email, password string) (models.User, int, error) {
	rec, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		return models.User{}, 0, errBadLogin
	}
	if err != nil {
		return models.User{}, 0, err
	}
	if err := bcrypt.CompareHashAndPassword(rec.Hash, []byte(password)); err != nil {
		return models.User{}, 0, errBadLogin
	}
	return rec.User, rec.Generation, nil
}

func (s *userStore) get(ctx context.Context, id int64) (models.User, int, error) {
	rec, err := s.repo.ByID(ctx, id)
	if err != nil {
		return models.User{}, 0, err
	}
	return rec.User, rec.Generation, nil
}

func (s *userStore) exists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.ByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, accounts.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *userStore) update(ctx context.Context, id int64, fn func(*models.User)) (models.User, error) {
	rec, err := s.repo.ByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	fn(&rec.User)
	if err := s.repo.Save(ctx, rec); err != nil {
		return models.User{}, err
	}
	return rec.User, nil
}

func (s *userStore) checkPassword(ctx context.Context, id int64, password string) (bool, error) {
	rec, err := s.repo.ByID(ctx, id)
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword(rec.Hash, []byte(password)) == nil, nil
}

func (s *userStore) setPassword(ctx context.Context, id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	rec, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	rec.Hash = hash
	return s.repo.Save(ctx, rec)
}

// revoke bumps the token generation of email. It reports whether the user
// exists.
func (s *userStore) revoke(ctx context.Context, email string) (bool, error) {
	rec, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	rec.Generation++
	return true, s.repo.Save(ctx, rec)
}
