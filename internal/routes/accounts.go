package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/account"
	"github.com/sango-pay/sango_pay/internal/history"
)

// RegisterAccountRoutes wires account registry and read-only endpoints.
func RegisterAccountRoutes(r fiber.Router, a *account.Handler, h *history.Handler) {
	r.Post("/accounts", a.Create)
	r.Get("/accounts/:accountId", a.Get)
	r.Get("/accounts/:accountId/balance", h.Balance)
	r.Get("/accounts/:accountId/transactions", h.Transactions)
}
