package ledger

import "context"

// Store is the persistent ledger store: the accounts table, the
// append-only transaction log, and the atomic mutations that keep the
// two consistent. Every mutating method either applies the balance
// update and the record append together or leaves the store untouched.
//
// Implementations: PostgresStore for real deployments, NewMemory for
// tests and dev mode.
type Store interface {
	// CreateAccount registers a new account with a zero balance.
	CreateAccount(ctx context.Context, id, displayName string) (Account, error)

	// Account returns the current snapshot of one account.
	Account(ctx context.Context, id string) (Account, error)

	// Deposit credits the account and appends one deposit record.
	Deposit(ctx context.Context, id string, amount int64) (Transaction, error)

	// Withdraw debits the account and appends one withdrawal record.
	// Fails without side effects if the balance would go negative.
	Withdraw(ctx context.Context, id string, amount int64) (Transaction, error)

	// Transfer moves amount between two distinct accounts and appends
	// the linked out/in record pair in the same atomic unit.
	Transfer(ctx context.Context, fromID, toID string, amount int64) (TransferRecord, error)

	// History returns the account's transactions matching the filter,
	// ordered by ascending ID.
	History(ctx context.Context, id string, f Filter) ([]Transaction, error)

	// Balance returns the stored balance without reading the log.
	Balance(ctx context.Context, id string) (int64, error)
}
