package history

import (
	"context"
	"time"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Service is the read-only side of the ledger: balance lookups and
// history queries. It never mutates state and is safe to call
// concurrently with writes.
type Service struct {
	store ledger.Store
}

// NewService builds a history reader over the given store.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// Balance is a point-in-time balance observation.
type Balance struct {
	AccountID string
	Amount    int64
	AsOf      time.Time
}

// History returns the account's transactions matching the filter,
// ordered by ascending ID.
func (s *Service) History(ctx context.Context, accountID string, f ledger.Filter) ([]ledger.Transaction, error) {
	return s.store.History(ctx, accountID, f)
}

// Balance returns the stored balance, an O(1) lookup that must always
// equal the fold of the account's history.
func (s *Service) Balance(ctx context.Context, accountID string) (Balance, error) {
	amount, err := s.store.Balance(ctx, accountID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{AccountID: accountID, Amount: amount, AsOf: time.Now().UTC()}, nil
}
