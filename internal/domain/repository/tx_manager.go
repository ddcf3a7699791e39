package repository

import "context"

// TxManager runs fn as one unit of work. Repositories called with the ctx
// passed to fn join that unit and fn's error is returned unchanged. The
// postgres implementation rolls back on error; the in-memory one only
// serializes units, so fn must fail before its first write.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
