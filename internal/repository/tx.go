package repository

import "context"

// TxRepos bundles the repositories scoped to one transaction.
type TxRepos struct {
	Vehicles VehicleRepository
	TripLogs TripLogRepository
}

// TxRunner executes a function inside a single transactional boundary. The
// ledger write and the registry status update of a lifecycle transition must
// commit or roll back together.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
