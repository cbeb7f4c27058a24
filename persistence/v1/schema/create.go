package schema

import (
	"context"
	"errors"

	"github.com/onelastai/memory-notes/sys"
)

// Create creates the snapshots table on sys.R.Database
func Create(ctx context.Context) error {
	db := sys.R.Database

	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return errors.New("create schema: " + err.Error())
	}

	return nil
}
