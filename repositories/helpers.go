package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// runInTx выполняет fn внутри транзакции. Каждая коллекция пишется целиком
// заменой, поэтому частичных записей не бывает: либо commit, либо rollback.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			_ = tx.Rollback()
		}
	}()
	if txErr = fn(tx); txErr != nil {
		return txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", txErr)
	}
	return nil
}
