// Package accounts stores the users and revoked refresh tokens of the
// development API, either in memory or in PostgreSQL.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/models"
)

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email taken")
)

// Record is one stored account.
type Record struct {
	User models.User
	Hash []byte
	// Generation is bumped on revocation. Tokens minted for an older
	// generation are rejected.
	Generation int
}

// Repository persists accounts. Emails are matched case-insensitively.
type Repository interface {
	// Create stores rec and assigns rec.User.ID.
	Create(ctx context.Context, rec *Record) error
	ByID(ctx context.Context, id int64) (*Record, error)
	ByEmail(ctx context.Context, email string) (*Record, error)
	// Save overwrites the stored account with the same ID.
	Save(ctx context.Context, rec *Record) error
}

// Blacklist remembers refresh tokens that were logged out, by token ID.
type Blacklist interface {
	Add(ctx context.Context, jti string, userID int64, expires time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}
