package account

import (
	"context"
	"strings"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Service is the account registry: it creates accounts and looks them
// up by identifier. Balances are mutated elsewhere, never here.
type Service struct {
	store ledger.Store
}

// NewService builds an account registry over the given store.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// CreateInput captures data required to open an account.
type CreateInput struct {
	ID          string
	DisplayName string
}

// Create registers a new account with a zero balance. The identifier is
// caller-chosen and immutable once created.
func (s *Service) Create(ctx context.Context, input CreateInput) (ledger.Account, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return ledger.Account{}, ledger.ErrInvalidAccountID
	}
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = id
	}
	return s.store.CreateAccount(ctx, id, name)
}

// Get retrieves the current snapshot of an account.
func (s *Service) Get(ctx context.Context, id string) (ledger.Account, error) {
	return s.store.Account(ctx, id)
}
