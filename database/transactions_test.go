package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records the savepoint calls made on it. Methods not overridden are
// never called by these tests.
type fakeTx struct {
	pgx.Tx
	nested     *fakeTx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) {
	f.nested = &fakeTx{}
	return f.nested, nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func TestWithSavepoint(t *testing.T) {
	t.Run("a failed step rolls back only the savepoint", func(t *testing.T) {
		outer := &fakeTx{}
		ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(outer))
		unique := errors.New("duplicate key value violates unique constraint")

		err := WithSavepoint(ctx, func(ctx context.Context) error {
			tx, err := GetTx(ctx)
			require.NoError(t, err)
			assert.Same(t, outer.nested, tx)
			return unique
		})

		assert.ErrorIs(t, err, unique)
		require.NotNil(t, outer.nested)
		assert.True(t, outer.nested.rolledBack)
		assert.False(t, outer.rolledBack)
		assert.False(t, outer.committed)
	})

	t.Run("a successful step releases the savepoint", func(t *testing.T) {
		outer := &fakeTx{}
		ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(outer))

		err := WithSavepoint(ctx, func(ctx context.Context) error { return nil })

		require.NoError(t, err)
		assert.True(t, outer.nested.committed)
		assert.False(t, outer.committed)
	})

	t.Run("runs directly without a transaction", func(t *testing.T) {
		called := false
		err := WithSavepoint(context.Background(), func(ctx context.Context) error {
			called = true
			_, err := GetTx(ctx)
			assert.ErrorIs(t, err, ErrNoTransaction)
			return nil
		})

		require.NoError(t, err)
		assert.True(t, called)
	})
}
