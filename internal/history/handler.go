package history

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/httperr"
	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Handler exposes the read-only ledger queries over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds a history HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionResponse struct {
	ID               int64     `json:"id"`
	Kind             string    `json:"kind"`
	AccountID        string    `json:"account_id"`
	CounterpartyID   string    `json:"counterparty_id,omitempty"`
	Amount           int64     `json:"amount"`
	Timestamp        time.Time `json:"timestamp"`
	ResultingBalance int64     `json:"resulting_balance"`
}

// Balance returns the stored balance of an account.
func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_id": balance.AccountID,
		"balance":    balance.Amount,
		"as_of":      balance.AsOf,
	})
}

// Transactions returns the account's history, optionally filtered by
// kind, time range and limit via query parameters.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	records, err := h.service.History(c.UserContext(), c.Params("accountId"), filter)
	if err != nil {
		return httperr.From(err)
	}

	out := make([]transactionResponse, 0, len(records))
	for _, t := range records {
		out = append(out, transactionResponse{
			ID:               t.ID,
			Kind:             string(t.Kind),
			AccountID:        t.AccountID,
			CounterpartyID:   t.CounterpartyID,
			Amount:           t.Amount,
			Timestamp:        t.Timestamp,
			ResultingBalance: t.ResultingBalance,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}

func parseFilter(c *fiber.Ctx) (ledger.Filter, error) {
	var f ledger.Filter

	if raw := c.Query("kind"); raw != "" {
		kind, ok := ledger.ParseKind(raw)
		if !ok {
			return ledger.Filter{}, fiber.NewError(http.StatusBadRequest, "unknown kind "+raw)
		}
		f.Kinds = []ledger.Kind{kind}
	}
	if raw := c.Query("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ledger.Filter{}, err
		}
		f.From = ts
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ledger.Filter{}, err
		}
		f.To = ts
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return ledger.Filter{}, fiber.NewError(http.StatusBadRequest, "invalid limit")
		}
		f.Limit = n
	}
	return f, nil
}
