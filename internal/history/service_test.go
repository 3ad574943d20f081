package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

func seededStore(t *testing.T) ledger.Store {
	t.Helper()
	store := ledger.NewMemory()
	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		if _, err := store.CreateAccount(ctx, id, id); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if _, err := store.Deposit(ctx, "alice", 1_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := store.Withdraw(ctx, "alice", 200); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := store.Transfer(ctx, "alice", "bob", 300); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	return store
}

func TestBalanceMatchesHistoryFold(t *testing.T) {
	svc := NewService(seededStore(t))
	ctx := context.Background()

	balance, err := svc.Balance(ctx, "alice")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Amount != 500 {
		t.Fatalf("expected 500, got %d", balance.Amount)
	}

	records, err := svc.History(ctx, "alice", ledger.Filter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var folded int64
	for _, tx := range records {
		switch tx.Kind {
		case ledger.KindDeposit, ledger.KindTransferIn:
			folded += tx.Amount
		case ledger.KindWithdrawal, ledger.KindTransferOut:
			folded -= tx.Amount
		}
	}
	if folded != balance.Amount {
		t.Fatalf("fold %d != stored %d", folded, balance.Amount)
	}
}

func TestHistoryKindFilter(t *testing.T) {
	svc := NewService(seededStore(t))
	records, err := svc.History(context.Background(), "alice", ledger.Filter{Kinds: []ledger.Kind{ledger.KindWithdrawal}})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 || records[0].Kind != ledger.KindWithdrawal {
		t.Fatalf("expected the single withdrawal, got %+v", records)
	}
}

func TestHistoryTimeRange(t *testing.T) {
	svc := NewService(seededStore(t))
	ctx := context.Background()

	all, err := svc.History(ctx, "alice", ledger.Filter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	// A window strictly before the first record excludes everything.
	past := ledger.Filter{To: all[0].Timestamp.Add(-time.Second)}
	none, err := svc.History(ctx, "alice", past)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty window, got %d records", len(none))
	}

	// From the first timestamp onward includes everything again.
	window := ledger.Filter{From: all[0].Timestamp}
	within, err := svc.History(ctx, "alice", window)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(within) != 3 {
		t.Fatalf("expected 3 records in window, got %d", len(within))
	}
}

func TestHistoryUnknownAccount(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	if _, err := svc.History(context.Background(), "ghost", ledger.Filter{}); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
