// Command wallet is an interactive terminal front end for the ledger.
// It owns all syntactic input handling (menu choices, decimal amount
// text) and dispatches to the core services, which re-validate every
// semantic constraint themselves.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sango-pay/sango_pay/internal/account"
	"github.com/sango-pay/sango_pay/internal/config"
	"github.com/sango-pay/sango_pay/internal/history"
	"github.com/sango-pay/sango_pay/internal/infra"
	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/payments"
)

const historyPageSize = 10

type cli struct {
	in       *bufio.Scanner
	accounts *account.Service
	payments *payments.Service
	history  *history.Service
	current  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var store ledger.Store
	if cfg.DatabaseURL != "" {
		db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connect postgres: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := infra.EnsureSchema(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "ensure schema: %v\n", err)
			os.Exit(1)
		}
		store = ledger.NewPostgresStore(db)
	} else {
		fmt.Println("no DATABASE_URL set, balances will not survive exit")
		store = ledger.NewMemory()
	}

	c := &cli{
		in:       bufio.NewScanner(os.Stdin),
		accounts: account.NewService(store),
		payments: payments.NewService(store, nil),
		history:  history.NewService(store),
	}
	c.run(ctx)
}

func (c *cli) run(ctx context.Context) {
	fmt.Println("SangoPay e-wallet")
	for {
		if c.current == "" {
			if !c.mainMenu(ctx) {
				return
			}
			continue
		}
		if !c.accountMenu(ctx) {
			return
		}
	}
}

func (c *cli) mainMenu(ctx context.Context) bool {
	fmt.Println()
	fmt.Println("1) open account")
	fmt.Println("2) use account")
	fmt.Println("3) quit")
	switch c.prompt("> ") {
	case "1":
		id := c.prompt("account id: ")
		name := c.prompt("display name: ")
		acct, err := c.accounts.Create(ctx, account.CreateInput{ID: id, DisplayName: name})
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("account %q opened\n", acct.ID)
		c.current = acct.ID
	case "2":
		id := c.prompt("account id: ")
		acct, err := c.accounts.Get(ctx, id)
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("hello %s\n", acct.DisplayName)
		c.current = acct.ID
	case "3", "q", "quit":
		return false
	default:
		fmt.Println("unknown choice")
	}
	return true
}

func (c *cli) accountMenu(ctx context.Context) bool {
	fmt.Printf("\n[%s]\n", c.current)
	fmt.Println("1) deposit")
	fmt.Println("2) withdraw")
	fmt.Println("3) transfer")
	fmt.Println("4) balance")
	fmt.Println("5) history")
	fmt.Println("6) switch account")
	fmt.Println("7) quit")
	switch c.prompt("> ") {
	case "1":
		amount, ok := c.promptAmount()
		if !ok {
			return true
		}
		record, err := c.payments.Deposit(ctx, c.current, amount)
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("deposited %s, balance %s\n", formatAmount(record.Amount), formatAmount(record.ResultingBalance))
	case "2":
		amount, ok := c.promptAmount()
		if !ok {
			return true
		}
		record, err := c.payments.Withdraw(ctx, c.current, amount)
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("withdrew %s, balance %s\n", formatAmount(record.Amount), formatAmount(record.ResultingBalance))
	case "3":
		to := c.prompt("recipient account id: ")
		amount, ok := c.promptAmount()
		if !ok {
			return true
		}
		rec, err := c.payments.Transfer(ctx, c.current, to, amount)
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("transferred %s to %s, balance %s\n", formatAmount(amount), to, formatAmount(rec.Out.ResultingBalance))
	case "4":
		balance, err := c.history.Balance(ctx, c.current)
		if err != nil {
			c.report(err)
			return true
		}
		fmt.Printf("balance: %s\n", formatAmount(balance.Amount))
	case "5":
		c.showHistory(ctx)
	case "6":
		c.current = ""
	case "7", "q", "quit":
		return false
	default:
		fmt.Println("unknown choice")
	}
	return true
}

func (c *cli) showHistory(ctx context.Context) {
	records, err := c.history.History(ctx, c.current, ledger.Filter{})
	if err != nil {
		c.report(err)
		return
	}
	if len(records) == 0 {
		fmt.Println("no transactions yet")
		return
	}
	if len(records) > historyPageSize {
		records = records[len(records)-historyPageSize:]
	}
	// Newest first for display.
	for i := len(records) - 1; i >= 0; i-- {
		t := records[i]
		line := fmt.Sprintf("%s  %-12s %10s  balance %s",
			t.Timestamp.Local().Format("2006-01-02 15:04:05"),
			t.Kind, formatAmount(t.Amount), formatAmount(t.ResultingBalance))
		if t.CounterpartyID != "" {
			line += "  (" + t.CounterpartyID + ")"
		}
		fmt.Println(line)
	}
}

func (c *cli) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *cli) promptAmount() (int64, bool) {
	raw := c.prompt("amount: ")
	amount, err := parseAmount(raw)
	if err != nil {
		fmt.Println(err)
		return 0, false
	}
	return amount, true
}

func (c *cli) report(err error) {
	var insufficient *ledger.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		fmt.Printf("insufficient funds: balance %s, requested %s\n",
			formatAmount(insufficient.Balance), formatAmount(insufficient.Requested))
	case errors.Is(err, ledger.ErrAccountNotFound):
		fmt.Println("account does not exist")
	case errors.Is(err, ledger.ErrDuplicateAccount):
		fmt.Println("that account id is taken")
	case errors.Is(err, ledger.ErrSameAccount):
		fmt.Println("cannot transfer to the same account")
	case errors.Is(err, ledger.ErrInvalidAmount):
		fmt.Println("amount must be positive")
	case errors.Is(err, ledger.ErrInvalidAccountID):
		fmt.Println("account id must not be empty")
	default:
		fmt.Printf("operation failed: %v\n", err)
	}
}
