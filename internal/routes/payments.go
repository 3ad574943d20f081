package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/payments"
)

// RegisterPaymentRoutes wires the mutating ledger endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler) {
	r.Post("/accounts/:accountId/deposits", h.Deposit)
	r.Post("/accounts/:accountId/withdrawals", h.Withdraw)
	r.Post("/transfers", h.Transfer)
}
