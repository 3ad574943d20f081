package payments

import (
	"context"
	"fmt"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/notification"
)

// Service is the ledger engine surface: it validates deposit, withdrawal
// and transfer commands and applies them through the store's atomic
// mutations. The store re-checks every semantic constraint inside its
// own transaction; validation here exists because the engine must not
// trust its callers.
type Service struct {
	store    ledger.Store
	notifier notification.Notifier
}

// NewService constructs a payments service.
func NewService(store ledger.Store, notifier notification.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Deposit credits an account and returns the appended record.
func (s *Service) Deposit(ctx context.Context, accountID string, amount int64) (ledger.Transaction, error) {
	if amount <= 0 {
		return ledger.Transaction{}, ledger.ErrInvalidAmount
	}
	return s.store.Deposit(ctx, accountID, amount)
}

// Withdraw debits an account and returns the appended record. Fails
// with an insufficient-funds error carrying the current balance when
// the account cannot cover the amount.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount int64) (ledger.Transaction, error) {
	if amount <= 0 {
		return ledger.Transaction{}, ledger.ErrInvalidAmount
	}
	return s.store.Withdraw(ctx, accountID, amount)
}

// Transfer moves funds between two distinct accounts and returns the
// linked record pair. Emits a transfer_received notification for the
// destination on success.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount int64) (ledger.TransferRecord, error) {
	if amount <= 0 {
		return ledger.TransferRecord{}, ledger.ErrInvalidAmount
	}
	if fromID == toID {
		return ledger.TransferRecord{}, ledger.ErrSameAccount
	}

	rec, err := s.store.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		return ledger.TransferRecord{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: toID,
			Body:        fmt.Sprintf("You received %d from %s", amount, fromID),
		})
	}

	return rec, nil
}
