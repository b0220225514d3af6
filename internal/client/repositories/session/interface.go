package session

import (
	"context"

	"github.com/dmitrijs2005/spabook/internal/dbx"
)

type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context) error

	// WithDB returns a repository bound to db, typically a transaction.
	WithDB(db dbx.DBTX) Repository
}
