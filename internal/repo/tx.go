package repo

import "context"

// TxRunner runs fn against item and movement repositories bound to a single
// storage transaction. fn returning an error rolls everything back; neither the
// item-state write nor the ledger append is visible unless both commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(items ItemRepository, movements MovementRepository) error) error
}
