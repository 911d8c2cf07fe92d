package appraisal

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TxManager runs fn inside one unit of work; every store call made from
// fn shares the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(context.Context) error) error
}

type noopTxManager struct{}

func (noopTxManager) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// ResolverDirectory answers whether an actor may resolve disputes. The
// authorization layer supplies the implementation; the engine only asks.
type ResolverDirectory interface {
	IsDisputeResolver(ctx context.Context, actorID string) (bool, error)
}

type Service struct {
	store     StoreAPI
	tx        TxManager
	clock     Clock
	resolvers ResolverDirectory
}

func NewService(store StoreAPI, tx TxManager, clock Clock, resolvers ResolverDirectory) *Service {
	if tx == nil {
		tx = noopTxManager{}
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Service{store: store, tx: tx, clock: clock, resolvers: resolvers}
}
