package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(email string) *Record {
	return &Record{
		User: models.User{Email: email, FirstName: "Ann", AccountType: models.AccountJobSeeker, Skills: []string{"welding"}},
		Hash: []byte("hash"),
	}
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a := newRecord("Ann@Example.com")
	require.NoError(t, r.Create(ctx, a))
	assert.Equal(t, int64(1), a.User.ID)

	b := newRecord("bob@example.com")
	require.NoError(t, r.Create(ctx, b))
	assert.Equal(t, int64(2), b.User.ID)

	assert.ErrorIs(t, r.Create(ctx, newRecord("ann@EXAMPLE.com")), ErrEmailTaken)

	got, err := r.ByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann@Example.com", got.User.Email)

	got, err = r.ByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.User.Email)

	_, err = r.ByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	rec := newRecord("ann@example.com")
	require.NoError(t, r.Create(ctx, rec))

	rec.User.Skills[0] = "changed"

	got, err := r.ByID(ctx, rec.User.ID)
	require.NoError(t, err)
	got.User.FirstName = "Eve"
	got.Generation = 7

	again, err := r.ByID(ctx, rec.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.User.FirstName)
	assert.Equal(t, 0, again.Generation)
	assert.Equal(t, []string{"welding"}, again.User.Skills)
}

func TestMemoryRepository_Save(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	ann := newRecord("ann@example.com")
	require.NoError(t, r.Create(ctx, ann))
	require.NoError(t, r.Create(ctx, newRecord("bob@example.com")))

	ann.Generation = 3
	ann.User.Location = "Riga"
	require.NoError(t, r.Save(ctx, ann))

	got, err := r.ByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Generation)
	assert.Equal(t, "Riga", got.User.Location)

	ann.User.Email = "ann@new.example.com"
	require.NoError(t, r.Save(ctx, ann))
	_, err = r.ByEmail(ctx, "ann@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.ByEmail(ctx, "ann@new.example.com")
	assert.NoError(t, err)

	ann.User.Email = "bob@example.com"
	assert.ErrorIs(t, r.Save(ctx, ann), ErrEmailTaken)

	ghost := newRecord("ghost@example.com")
	ghost.User.ID = 42
	assert.ErrorIs(t, r.Save(ctx, ghost), ErrNotFound)
}

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewMemoryBlacklist()
	b.now = func() time.Time { return now }

	require.NoError(t, b.Add(ctx, "old", 1, now.Add(time.Minute)))
	require.NoError(t, b.Add(ctx, "keep", 1, now.Add(time.Hour)))

	ok, err := b.Contains(ctx, "old")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(10 * time.Minute)
	require.NoError(t, b.Add(ctx, "new", 2, now.Add(time.Hour)))

	for jti, want := range map[string]bool{"old": false, "keep": true, "new": true, "never": false} {
		ok, err := b.Contains(ctx, jti)
		require.NoError(t, err)
		assert.Equal(t, want, ok, jti)
	}
}
