package service

import (
	"context"

	"graspnest.app/api-server/core/db"
	"graspnest.app/api-server/internal/store"
)

// StoreProvider hands out store instances bound to a single query
// surface, either the pool or one transaction.
type StoreProvider interface {
	Users() store.UserStore
	Organizations() store.OrganizationStore
	Communities() store.CommunityStore
	Landlords() store.LandlordStore
}

// TxRunner runs fn inside one database transaction. Every store obtained
// from the provider shares that transaction; an error from fn rolls the
// whole thing back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(database *db.DB) TxRunner {
	return &dbTxRunner{db: database}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q db.DBTX) error {
		return fn(store.NewStores(q))
	})
}
