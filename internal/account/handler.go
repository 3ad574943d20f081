package account

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/httperr"
	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Handler exposes account registry HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type accountResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(a ledger.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
	}
}

// Create opens a new account.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acct, err := h.service.Create(c.UserContext(), CreateInput{ID: req.ID, DisplayName: req.DisplayName})
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(acct))
}

// Get returns the account snapshot.
func (h *Handler) Get(c *fiber.Ctx) error {
	acct, err := h.service.Get(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return httperr.From(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(acct))
}
