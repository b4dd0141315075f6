package repository

import "context"

// TxManager runs fn inside a transaction. Repository implementations pick
// the transaction handle up from the context, so usecases stay free of any
// driver type.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
