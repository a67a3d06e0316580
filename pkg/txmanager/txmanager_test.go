package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	begins     int
	commitErrs []error
	txs        []*fakeTx
}

func (f *fakeDB) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	tx := &fakeTx{}
	if len(f.commitErrs) > 0 {
		tx.commitErr = f.commitErrs[0]
		f.commitErrs = f.commitErrs[1:]
	}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func serializationFailure() *pq.Error {
	return &pq.Error{Code: pq.ErrorCode(serializationFailureCode)}
}

func TestDoSerializable_Success(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		// Транзакция должна быть доступна репозиториям через контекст
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, db.begins)
	assert.True(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	// Репозитории оборачивают ошибку драйвера через %w, цепочка сохраняется
	wrapped := fmt.Errorf("%w: Create - execute insert: %w",
		errors.New("storage.booking: failed to execute query"), serializationFailure())

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return wrapped
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, db.begins)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].rolledBack)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	db := &fakeDB{commitErrs: []error{serializationFailure()}}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, db.begins)
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_NonRetryableReturnsImmediately(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, db.begins)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := &fakeDB{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return serializationFailure()
	})

	require.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxRetries, db.begins)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(serializationFailure()))
	assert.True(t, isRetryable(&pq.Error{Code: pq.ErrorCode(deadlockDetectedCode)}))

	// Обёртки сервисного и транзакционного слоёв не должны прятать код ошибки
	assert.True(t, isRetryable(fmt.Errorf("%w: commit: %w", ErrTxFailed, serializationFailure())))
	assert.True(t, isRetryable(fmt.Errorf("%w: GetWithFilter - execute query: %w",
		errors.New("storage.booking: failed to execute query"), serializationFailure())))

	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(&pq.Error{Code: "23505"}))
}
