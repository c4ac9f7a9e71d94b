package accounts

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Record
	byMail map[string]int64
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[int64]*Record),
		byMail: make(map[string]int64),
		nextID: 1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(rec.User.Email)
	if _, ok := r.byMail[key]; ok {
		return ErrEmailTaken
	}

	rec.User.ID = r.nextID
	r.nextID++

	r.byID[rec.User.ID] = clone(rec)
	r.byMail[key] = rec.User.ID
	return nil
}

func (r *MemoryRepository) ByID(ctx context.Context, id int64) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (r *MemoryRepository) ByEmail(ctx context.Context, email string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byMail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) Save(ctx context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[rec.User.ID]
	if !ok {
		return ErrNotFound
	}

	oldKey, newKey := strings.ToLower(old.User.Email), strings.ToLower(rec.User.Email)
	if oldKey != newKey {
		if _, taken := r.byMail[newKey]; taken {
			return ErrEmailTaken
		}
		delete(r.byMail, oldKey)
		r.byMail[newKey] = rec.User.ID
	}

	r.byID[rec.User.ID] = clone(rec)
	return nil
}

// clone copies rec deeply enough that callers cannot alter stored state.
func clone(rec *Record) *Record {
	c := *rec
	c.Hash = slices.Clone(rec.Hash)
	c.User.Skills = slices.Clone(rec.User.Skills)
	c.User.Availability = maps.Clone(rec.User.Availability)
	c.User.HourlyRate = cloneString(rec.User.HourlyRate)
	c.User.ProfilePicture = cloneString(rec.User.ProfilePicture)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// MemoryBlacklist drops entries once they expire.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryBlacklist) Add(ctx context.Context, jti string, userID int64, expires time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for k, exp := range b.entries {
		if now.After(exp) {
			delete(b.entries, k)
		}
	}
	b.entries[jti] = expires
	return nil
}

func (b *MemoryBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries[jti]
	return ok, nil
}

var (
	_ Repository = (*MemoryRepository)(nil)
	_ Blacklist  = (*MemoryBlacklist)(nil)
)
