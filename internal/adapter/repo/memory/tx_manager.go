package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx just runs fn: Store already guards every call with its own
// mutex, and fn calls back into Store, so locking here too would deadlock.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
