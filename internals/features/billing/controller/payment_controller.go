// file: internals/features/billing/controller/payment_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/billing/dto"
	model "hoaportal_backend/internals/features/billing/model"
	service "hoaportal_backend/internals/features/billing/service"
	helper "hoaportal_backend/internals/helpers"
	"hoaportal_backend/internals/helpers/mailer"
)

type PaymentController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
	Mail   mailer.Mailer
}

func NewPaymentController(db *gorm.DB, mail mailer.Mailer) *PaymentController {
	return &PaymentController{DB: db, Ledger: service.NewLedgerService(db), Mail: mail}
}

// -----------------------------------------
// List (GET /api/a/payments)
// Query filters: owner_user_id, invoice_id, voided, method,
// date_from/date_to, sort_by (created_at|date|amount), order, page, per_page
// -----------------------------------------
func (h *PaymentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.Payment{})

	if v := c.Query("owner_user_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_owner_user_id = ?", id)
		}
	}
	if v := c.Query("invoice_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_invoice_id = ?", id)
		}
	}
	if v := c.Query("voided"); v != "" {
		q = q.Where("payment_is_voided = ?", v == "true")
	}
	if v := c.Query("method"); v != "" {
		q = q.Where("payment_method = ?", v)
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("payment_date >= ?", t)
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("payment_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "payment_created_at",
		"date":       "payment_date",
		"amount":     "payment_amount_cents",
	}, "created_at")
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
// Record (POST /api/a/payments)
// Books the payment through the ledger so the applied-vs-credit split is
// captured at creation time.
// -----------------------------------------
func (h *PaymentController) Record(c *fiber.Ctx) error {
	var in dto.PaymentRecordDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	input := service.RecordPaymentInput{
		OwnerUserID: in.PaymentOwnerUserID,
		InvoiceID:   in.PaymentInvoiceID,
		AmountCents: in.PaymentAmountCents,
		Method:      model.PaymentMethod(in.PaymentMethod),
		Reference:   in.PaymentReference,
		Notes:       in.PaymentNotes,
	}
	if in.PaymentDate != nil {
		input.Date = *in.PaymentDate
	}

	payment, res, err := h.Ledger.RecordPayment(c.UserContext(), input)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonCreated(c, res.Message, dto.ToPaymentResponse(*payment))
}

// -----------------------------------------
// Void (POST /api/a/payments/:id/void)
// Reverses the payment's direct invoice effect plus the full
// overpayment-credit cascade, atomically.
// -----------------------------------------
func (h *PaymentController) Void(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.PaymentVoidDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	res, err := h.Ledger.VoidPayment(c.UserContext(), id, in.Reason)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}
