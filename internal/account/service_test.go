package account

import (
	"context"
	"errors"
	"testing"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

func TestCreateAndGet(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	ctx := context.Background()

	acct, err := svc.Create(ctx, CreateInput{ID: "alice", DisplayName: "Alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if acct.Balance != 0 {
		t.Fatalf("new accounts must start at zero, got %d", acct.Balance)
	}

	fetched, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ID != "alice" || fetched.DisplayName != "Alice" {
		t.Fatalf("unexpected account: %+v", fetched)
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{ID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{ID: "alice", DisplayName: "Other"}); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCreateRejectsEmptyID(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	if _, err := svc.Create(context.Background(), CreateInput{ID: "   "}); !errors.Is(err, ledger.ErrInvalidAccountID) {
		t.Fatalf("expected invalid account id, got %v", err)
	}
}

func TestCreateDefaultsDisplayName(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	acct, err := svc.Create(context.Background(), CreateInput{ID: "bob"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if acct.DisplayName != "bob" {
		t.Fatalf("expected display name to default to id, got %q", acct.DisplayName)
	}
}

func TestGetMissing(t *testing.T) {
	svc := NewService(ledger.NewMemory())
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
