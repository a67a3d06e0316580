package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/avoevodin/hall-booking-service/pkg/dbmetrics"
)

// maxRetries максимальное количество повторов при serialization failure
const maxRetries = 3

// pq error codes, при которых транзакцию имеет смысл повторить
const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// ErrTxFailed возвращается, когда транзакция не прошла после всех повторов
var ErrTxFailed = errors.New("txmanager: transaction failed")

// DB интерфейс подключения, умеющего начинать транзакции
// Реализуется инструментированным dbmetrics.DB
type DB interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в сериализуемых транзакциях
type TransactionManager struct {
	db DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE
// Транзакция кладётся в контекст, репозитории подхватывают её через dbmetrics.GetExecutor
// При serialization failure повторяет до maxRetries раз
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrTxFailed, maxRetries, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Ошибка драйвера оборачивается через %w: конфликт сериализации чаще
	// всего всплывает именно на commit, и isRetryable должен его увидеть
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	return nil
}

// isRetryable проверяет, что ошибка вызвана конфликтом сериализации
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode || string(pqErr.Code) == deadlockDetectedCode
	}
	return false
}
