package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists accounts and the transaction log in PostgreSQL.
// Every mutation runs in one explicit transaction covering both the
// balance update and the record append, so the log and the balances can
// never diverge.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateAccount registers a new account with a zero balance.
func (s *PostgresStore) CreateAccount(ctx context.Context, id, displayName string) (Account, error) {
	const query = `INSERT INTO accounts (id, display_name, balance) VALUES ($1, $2, 0)
        ON CONFLICT (id) DO NOTHING
        RETURNING created_at`
	var createdAt time.Time
	if err := s.db.QueryRow(ctx, query, id, displayName).Scan(&createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrDuplicateAccount
		}
		return Account{}, storeFailure("create account", err)
	}
	return Account{ID: id, DisplayName: displayName, Balance: 0, CreatedAt: createdAt.UTC()}, nil
}

// Account returns the current snapshot of one account.
func (s *PostgresStore) Account(ctx context.Context, id string) (Account, error) {
	const query = `SELECT id, display_name, balance, created_at FROM accounts WHERE id = $1`
	var a Account
	if err := s.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.DisplayName, &a.Balance, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, &NotFoundError{AccountID: id}
		}
		return Account{}, storeFailure("load account", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// Deposit credits the account and appends the deposit record atomically.
func (s *PostgresStore) Deposit(ctx context.Context, id string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, storeFailure("begin deposit", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, err := lockBalance(ctx, tx, id)
	if err != nil {
		return Transaction{}, err
	}

	newBalance := balance + amount
	if err := setBalance(ctx, tx, id, newBalance); err != nil {
		return Transaction{}, err
	}

	record, err := appendRecord(ctx, tx, KindDeposit, id, "", amount, time.Now().UTC(), newBalance)
	if err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, storeFailure("commit deposit", err)
	}
	return record, nil
}

// Withdraw debits the account and appends the withdrawal record. The
// whole operation aborts without side effects when funds are short.
func (s *PostgresStore) Withdraw(ctx context.Context, id string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, storeFailure("begin withdrawal", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, err := lockBalance(ctx, tx, id)
	if err != nil {
		return Transaction{}, err
	}
	if balance < amount {
		return Transaction{}, &InsufficientFundsError{AccountID: id, Balance: balance, Requested: amount}
	}

	newBalance := balance - amount
	if err := setBalance(ctx, tx, id, newBalance); err != nil {
		return Transaction{}, err
	}

	record, err := appendRecord(ctx, tx, KindWithdrawal, id, "", amount, time.Now().UTC(), newBalance)
	if err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, storeFailure("commit withdrawal", err)
	}
	return record, nil
}

// Transfer moves amount between two accounts and appends the linked
// out/in record pair in one transaction. Row locks are always taken in
// ascending account-id order so opposing concurrent transfers over the
// same pair cannot deadlock.
func (s *PostgresStore) Transfer(ctx context.Context, fromID, toID string, amount int64) (TransferRecord, error) {
	if amount <= 0 {
		return TransferRecord{}, ErrInvalidAmount
	}
	if fromID == toID {
		return TransferRecord{}, ErrSameAccount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransferRecord{}, storeFailure("begin transfer", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	balances := make(map[string]int64, 2)
	for _, id := range []string{first, second} {
		b, err := lockBalance(ctx, tx, id)
		if err != nil {
			return TransferRecord{}, err
		}
		balances[id] = b
	}

	if balances[fromID] < amount {
		return TransferRecord{}, &InsufficientFundsError{AccountID: fromID, Balance: balances[fromID], Requested: amount}
	}

	fromBalance := balances[fromID] - amount
	toBalance := balances[toID] + amount
	if err := setBalance(ctx, tx, fromID, fromBalance); err != nil {
		return TransferRecord{}, err
	}
	if err := setBalance(ctx, tx, toID, toBalance); err != nil {
		return TransferRecord{}, err
	}

	now := time.Now().UTC()
	out, err := appendRecord(ctx, tx, KindTransferOut, fromID, toID, amount, now, fromBalance)
	if err != nil {
		return TransferRecord{}, err
	}
	in, err := appendRecord(ctx, tx, KindTransferIn, toID, fromID, amount, now, toBalance)
	if err != nil {
		return TransferRecord{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return TransferRecord{}, storeFailure("commit transfer", err)
	}
	return TransferRecord{Out: out, In: in}, nil
}

// History returns the account's transactions matching the filter,
// ordered by ascending ID.
func (s *PostgresStore) History(ctx context.Context, id string, f Filter) ([]Transaction, error) {
	if _, err := s.Balance(ctx, id); err != nil {
		return nil, err
	}

	query := `SELECT id, kind, account_id, counterparty_id, amount, created_at, resulting_balance
        FROM transactions WHERE account_id = $1`
	args := []any{id}

	if len(f.Kinds) > 0 {
		kinds := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			kinds[i] = string(k)
		}
		args = append(args, kinds)
		query += ` AND kind = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeFailure("query history", err)
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		var counterparty *string
		if err := rows.Scan(&t.ID, &t.Kind, &t.AccountID, &counterparty, &t.Amount, &t.Timestamp, &t.ResultingBalance); err != nil {
			return nil, storeFailure("scan history row", err)
		}
		if counterparty != nil {
			t.CounterpartyID = *counterparty
		}
		t.Timestamp = t.Timestamp.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read history", err)
	}
	return out, nil
}

// Balance returns the stored balance column without touching the log.
func (s *PostgresStore) Balance(ctx context.Context, id string) (int64, error) {
	const query = `SELECT balance FROM accounts WHERE id = $1`
	var balance int64
	if err := s.db.QueryRow(ctx, query, id).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{AccountID: id}
		}
		return 0, storeFailure("load balance", err)
	}
	return balance, nil
}

func lockBalance(ctx context.Context, tx pgx.Tx, id string) (int64, error) {
	const query = `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`
	var balance int64
	if err := tx.QueryRow(ctx, query, id).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{AccountID: id}
		}
		return 0, storeFailure("lock account", err)
	}
	return balance, nil
}

func setBalance(ctx context.Context, tx pgx.Tx, id string, balance int64) error {
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2`, balance, id); err != nil {
		return storeFailure("update balance", err)
	}
	return nil
}

func appendRecord(ctx context.Context, tx pgx.Tx, kind Kind, accountID, counterpartyID string, amount int64, ts time.Time, resulting int64) (Transaction, error) {
	const query = `INSERT INTO transactions (kind, account_id, counterparty_id, amount, created_at, resulting_balance)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	var counterparty *string
	if counterpartyID != "" {
		counterparty = &counterpartyID
	}
	record := Transaction{
		Kind:             kind,
		AccountID:        accountID,
		CounterpartyID:   counterpartyID,
		Amount:           amount,
		Timestamp:        ts,
		ResultingBalance: resulting,
	}
	if err := tx.QueryRow(ctx, query, string(kind), accountID, counterparty, amount, ts, resulting).Scan(&record.ID); err != nil {
		return Transaction{}, storeFailure("append record", err)
	}
	return record, nil
}
