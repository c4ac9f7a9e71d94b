package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/employera/internal/client/repositories/kv"
)

// ThemeMode is the persisted color preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ThemeService persists the color preference next to the session. It is
// independent of authentication and survives logout.
type ThemeService struct {
	db *sql.DB
}

func NewThemeService(db *sql.DB) *ThemeService {
	return &ThemeService{db: db}
}

// Mode returns the stored mode, light when nothing valid is stored.
func (t *ThemeService) Mode(ctx context.Context) ThemeMode {
	v, err := kv.NewSQLiteRepository(t.db).Get(ctx, kv.KeyThemeMode)
	if err != nil {
		return ThemeLight
	}
	switch ThemeMode(v) {
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeLight
	}
}

func (t *ThemeService) SetMode(ctx context.Context, mode ThemeMode) error {
	if mode != ThemeLight && mode != ThemeDark {
		return fmt.Errorf("unknown theme %q", mode)
	}
	return kv.NewSQLiteRepository(t.db).Set(ctx, kv.KeyThemeMode, []byte(mode))
}

// Toggle flips between light and dark and returns the new mode.
func (t *ThemeService) Toggle(ctx context.Context) (ThemeMode, error) {
	next := ThemeDark
	if t.Mode(ctx) == ThemeDark {
		next = ThemeLight
	}
	if err := t.SetMode(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
