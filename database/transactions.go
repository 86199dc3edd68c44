package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoTransaction = errors.New("no transaction in context")

// Transactor runs a unit of work inside a single database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

type DBTransactor struct {
	db *pgxpool.Pool
}

func NewDBTransactor(db *pgxpool.Pool) *DBTransactor {
	return &DBTransactor{db: db}
}

// WithTransaction begins a transaction, stores it in the context passed to fn
// and commits when fn returns nil. Any error rolls the transaction back.
func (t *DBTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

type txKey struct{}

// GetTx returns the transaction started by WithTransaction.
func GetTx(ctx context.Context) (pgx.Tx, error) {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx, nil
	}
	return nil, ErrNoTransaction
}

// WithSavepoint runs fn inside a savepoint of the transaction in ctx so a
// failed statement can be retried without aborting the outer transaction.
// Without a transaction in ctx fn runs directly.
func WithSavepoint(ctx context.Context, fn func(context.Context) error) error {
	tx, err := GetTx(ctx)
	if err != nil {
		return fn(ctx)
	}

	savepoint, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, savepoint)); err != nil {
		if rbErr := savepoint.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("savepoint err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return savepoint.Commit(ctx)
}

// QueriesFor returns q bound to the transaction in ctx, or q itself when the
// context carries none.
func QueriesFor(ctx context.Context, q *Queries) *Queries {
	if tx, err := GetTx(ctx); err == nil {
		return q.WithTx(tx)
	}
	return q
}
