package storage

import (
	"io/fs"

	"github.com/dmitrijs2005/employera/internal/client/migrations"
)

func mustSub() fs.FS {
	sub, err := fs.Sub(migrations.Migrations, migrations.Dir)
	if err != nil {
		panic(err)
	}
	return sub
}
