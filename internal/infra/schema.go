package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so startup can apply them on every
// boot. The CHECK constraints back the core invariants at the store
// level: balances never go negative and amounts are always positive.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
        id TEXT PRIMARY KEY,
        display_name TEXT NOT NULL,
        balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS transactions (
        id BIGSERIAL PRIMARY KEY,
        kind TEXT NOT NULL,
        account_id TEXT NOT NULL REFERENCES accounts(id),
        counterparty_id TEXT REFERENCES accounts(id),
        amount BIGINT NOT NULL CHECK (amount > 0),
        created_at TIMESTAMPTZ NOT NULL,
        resulting_balance BIGINT NOT NULL CHECK (resulting_balance >= 0)
    )`,
	`CREATE INDEX IF NOT EXISTS transactions_account_id_idx
        ON transactions (account_id, id)`,
}

// EnsureSchema creates the accounts and transactions tables when absent.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
