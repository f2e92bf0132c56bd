package postgres

import (
	"context"
	"database/sql"

	"fleet/internal/repository"
)

// TxManager runs functions inside a database transaction with
// transaction-scoped repositories.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx begins a transaction, passes tx-scoped repositories to fn, and
// commits if fn returns nil. Any error rolls the transaction back.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	repos := repository.TxRepos{
		Vehicles: NewVehicleRepositoryWithTx(tx),
		TripLogs: NewTripLogRepositoryWithTx(tx),
	}

	if err := fn(ctx, repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Ensure TxManager implements repository.TxRunner.
var _ repository.TxRunner = (*TxManager)(nil)
