package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/notification"
)

type testNotifier struct {
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return nil
}

func newStore(t *testing.T, ids ...string) ledger.Store {
	t.Helper()
	store := ledger.NewMemory()
	for _, id := range ids {
		if _, err := store.CreateAccount(context.Background(), id, id); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	return store
}

func TestDepositAndWithdraw(t *testing.T) {
	store := newStore(t, "alice")
	svc := NewService(store, nil)
	ctx := context.Background()

	record, err := svc.Deposit(ctx, "alice", 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if record.ResultingBalance != 1_000 {
		t.Fatalf("expected balance 1000, got %d", record.ResultingBalance)
	}

	record, err = svc.Withdraw(ctx, "alice", 300)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if record.ResultingBalance != 700 {
		t.Fatalf("expected balance 700, got %d", record.ResultingBalance)
	}
}

func TestDepositRejectsNonPositive(t *testing.T) {
	svc := NewService(newStore(t, "alice"), nil)
	for _, amount := range []int64{0, -50} {
		if _, err := svc.Deposit(context.Background(), "alice", amount); !errors.Is(err, ledger.ErrInvalidAmount) {
			t.Fatalf("amount %d: expected invalid amount, got %v", amount, err)
		}
	}
}

func TestWithdrawInsufficient(t *testing.T) {
	store := newStore(t, "alice")
	svc := NewService(store, nil)
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "alice", 500); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Withdraw(ctx, "alice", 800)
	var insufficient *ledger.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if insufficient.Balance != 500 || insufficient.Requested != 800 {
		t.Fatalf("unexpected detail: %+v", insufficient)
	}
}

func TestTransferNotifiesRecipient(t *testing.T) {
	store := newStore(t, "alice", "bob")
	notifier := &testNotifier{}
	svc := NewService(store, notifier)
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "alice", 2_000); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, err := svc.Transfer(ctx, "alice", "bob", 500)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if rec.Out.ResultingBalance != 1_500 || rec.In.ResultingBalance != 500 {
		t.Fatalf("unexpected balances: %+v", rec)
	}
	if notifier.last.Kind != notification.KindTransferReceived || notifier.last.Destination != "bob" {
		t.Fatalf("expected transfer notification for bob, got %+v", notifier.last)
	}
}

func TestTransferSameAccount(t *testing.T) {
	svc := NewService(newStore(t, "alice"), nil)
	if _, err := svc.Transfer(context.Background(), "alice", "alice", 100); !errors.Is(err, ledger.ErrSameAccount) {
		t.Fatalf("expected same account error, got %v", err)
	}
}

func TestTransferFailureLeavesBalances(t *testing.T) {
	store := newStore(t, "alice", "bob")
	svc := NewService(store, nil)
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "alice", 100); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Transfer(ctx, "alice", "bob", 500); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	aliceBal, _ := store.Balance(ctx, "alice")
	bobBal, _ := store.Balance(ctx, "bob")
	if aliceBal != 100 || bobBal != 0 {
		t.Fatalf("failed transfer must not move funds: alice=%d bob=%d", aliceBal, bobBal)
	}
}
