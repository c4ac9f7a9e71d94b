package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/employera/internal/client/repositories/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeService(t *testing.T) {
	db := setupDB(t)
	ts := NewThemeService(db)
	ctx := context.Background()

	assert.Equal(t, ThemeLight, ts.Mode(ctx))

	mode, err := ts.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, mode)
	assert.Equal(t, []byte("dark"), getKey(t, db, kv.KeyThemeMode))

	mode, err = ts.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, mode)

	require.Error(t, ts.SetMode(ctx, "sepia"))

	setKey(t, db, kv.KeyThemeMode, []byte("garbage"))
	assert.Equal(t, ThemeLight, ts.Mode(ctx))
}
