package appraisal

import (
	"context"

	"appraisal/internal/platform/db"
)

// Store persists the five appraisal entities. Every method resolves its
// queryer from the context first, so calls made under the service's
// transaction manager share one transaction.
type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) q(ctx context.Context) db.Queryer {
	return db.QueryerFromContext(ctx, s.DB)
}
