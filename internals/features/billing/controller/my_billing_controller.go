// file: internals/features/billing/controller/my_billing_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/billing/dto"
	model "hoaportal_backend/internals/features/billing/model"
	service "hoaportal_backend/internals/features/billing/service"
	helper "hoaportal_backend/internals/helpers"
)

// MyBillingController serves the member-facing, read-only billing views.
type MyBillingController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewMyBillingController(db *gorm.DB) *MyBillingController {
	return &MyBillingController{DB: db, Ledger: service.NewLedgerService(db)}
}

// -----------------------------------------
// MyInvoices (GET /api/u/invoices)
// -----------------------------------------
func (h *MyBillingController) MyInvoices(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p := helper.ParseFiber(c, "due_date", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Invoice{}).Where("invoice_owner_user_id = ?", userID)
	if v := c.Query("status"); v != "" {
		q = q.Where("invoice_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"due_date":   "invoice_due_date",
		"created_at": "invoice_created_at",
		"amount":     "invoice_amount_due_cents",
	}, "due_date")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.Invoice
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToInvoiceResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// MyPayments (GET /api/u/payments)
// -----------------------------------------
func (h *MyBillingController) MyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Payment{}).Where("payment_owner_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"date":   "payment_date",
		"amount": "payment_amount_cents",
	}, "date")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.Payment
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToPaymentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// MyCredits (GET /api/u/credits)
// -----------------------------------------
func (h *MyBillingController) MyCredits(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var list []model.UserCredit
	if err := h.DB.
		Where("user_credit_owner_user_id = ?", userID).
		Order("user_credit_date DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToUserCreditResponses(list))
}

// -----------------------------------------
// MyStatement (GET /api/u/statement)
// -----------------------------------------
func (h *MyBillingController) MyStatement(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	st, err := h.Ledger.Statement(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", st)
}
