package payments

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/httperr"
	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Handler exposes the mutating ledger operations over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds a payments HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        int64  `json:"amount"`
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

func toResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:               t.ID,
		Kind:             string(t.Kind),
		AccountID:        t.AccountID,
		CounterpartyID:   t.CounterpartyID,
		Amount:           t.Amount,
		Timestamp:        t.Timestamp,
		ResultingBalance: t.ResultingBalance,
	}
}

// Deposit credits the account named in the path.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	record, err := h.service.Deposit(c.UserContext(), c.Params("accountId"), req.Amount)
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(record))
}

// Withdraw debits the account named in the path.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	record, err := h.service.Withdraw(c.UserContext(), c.Params("accountId"), req.Amount)
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(record))
}

// Transfer moves funds between two accounts.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.service.Transfer(c.UserContext(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"out": toResponse(rec.Out),
		"in":  toResponse(rec.In),
	})
}
