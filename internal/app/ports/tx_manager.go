package ports

import "context"

// TxManager is the scoped acquisition of the fiefdom database's
// transaction (spec §4.7 TransactionScope). On entry it begins a
// transaction; fn's returned error triggers rollback, a nil return
// commits. Every write path in the engine must run inside one.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
