// file: internals/features/billing/controller/ledger_errors.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	service "hoaportal_backend/internals/features/billing/service"
	helper "hoaportal_backend/internals/helpers"
)

// mapLedgerError turns ledger sentinel errors into HTTP responses. Every
// ledger failure is recovered here; nothing propagates as a fiber panic.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotBillingContact),
		errors.Is(err, service.ErrNoOverdueInvoice),
		errors.Is(err, service.ErrDuplicateLateFee):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		// persistence failure: transaction already rolled back
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
