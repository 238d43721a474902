// file: internals/features/billing/controller/invoice_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/billing/dto"
	model "hoaportal_backend/internals/features/billing/model"
	service "hoaportal_backend/internals/features/billing/service"
	userModel "hoaportal_backend/internals/features/users/model"
	helper "hoaportal_backend/internals/helpers"
	"hoaportal_backend/internals/helpers/mailer"
)

type InvoiceController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
	Mail   mailer.Mailer
}

func NewInvoiceController(db *gorm.DB, mail mailer.Mailer) *InvoiceController {
	return &InvoiceController{DB: db, Ledger: service.NewLedgerService(db), Mail: mail}
}

// -----------------------------------------
// List (GET /api/a/invoices)
// Query filters (optional):
// - owner_user_id, status, type, batch_id
// - due_from, due_to (RFC3339)
// - sort_by (created_at|due_date|amount|status), order (asc|desc)
// - page, per_page
// -----------------------------------------
func (h *InvoiceController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.Invoice{})

	if v := c.Query("owner_user_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("invoice_owner_user_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("invoice_status = ?", strings.ToLower(v))
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("invoice_type = ?", strings.ToLower(v))
	}
	if v := c.Query("batch_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("invoice_batch_id = ?", id)
		}
	}
	if v := c.Query("due_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("invoice_due_date >= ?", t)
		}
	}
	if v := c.Query("due_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("invoice_due_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "invoice_created_at",
		"due_date":   "invoice_due_date",
		"amount":     "invoice_amount_due_cents",
		"status":     "invoice_status",
	}, "created_at")
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
// Create (POST /api/a/invoices)
// -----------------------------------------
func (h *InvoiceController) Create(c *fiber.Ctx) error {
	var in dto.InvoiceCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	m := dto.InvoiceCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	h.notifyOwner(m.InvoiceOwnerUserID, "New invoice from your HOA",
		fmt.Sprintf("An invoice for %s is due on %s: %s",
			centsToDollars(m.InvoiceAmountDueCents),
			m.InvoiceDueDate.Format("Jan 2, 2006"),
			m.InvoiceDescription))

	return helper.JsonCreated(c, "invoice created", dto.ToInvoiceResponse(m))
}

// -----------------------------------------
// GetByID (GET /api/a/invoices/:id)
// -----------------------------------------
func (h *InvoiceController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Invoice
	if err := h.DB.First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToInvoiceResponse(m))
}

// -----------------------------------------
// Void (POST /api/a/invoices/:id/void)
// Cancels the invoice and unwinds its credit consumption atomically.
// -----------------------------------------
func (h *InvoiceController) Void(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.InvoiceVoidDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	res, err := h.Ledger.VoidInvoice(c.UserContext(), id, in.Reason)
	if err != nil {
		return mapLedgerError(c, err)
	}
	if !res.Warning {
		var m model.Invoice
		if err := h.DB.First(&m, "invoice_id = ?", id).Error; err == nil {
			h.notifyOwner(m.InvoiceOwnerUserID, "Invoice cancelled",
				fmt.Sprintf("%s (reason: %s)", res.Message, in.Reason))
		}
	}
	return helper.JsonOK(c, res.Message, res)
}

// -----------------------------------------
// ApplyCredits (POST /api/a/invoices/:id/apply-credits)
// -----------------------------------------
func (h *InvoiceController) ApplyCredits(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res, err := h.Ledger.ApplyCreditsToInvoice(c.UserContext(), id)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, res.Message, res)
}

// -----------------------------------------
// ApplyLateFee (POST /api/a/members/:user_id/late-fee)
// Route is role-gated (admin|manager); the service enforces the
// billing-contact flag and the ledger rules.
// -----------------------------------------
func (h *InvoiceController) ApplyLateFee(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user_id")
	}
	res, err := h.Ledger.ApplyLateFee(c.UserContext(), targetID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	h.notifyOwner(targetID, "Late fee applied to your account", res.Message)
	return helper.JsonOK(c, res.Message, res)
}

// notifyOwner emails the account owner, fire-and-forget. Billing outcomes
// never depend on delivery.
func (h *InvoiceController) notifyOwner(ownerUserID uuid.UUID, subject, body string) {
	if h.Mail == nil {
		return
	}
	var owner userModel.User
	if err := h.DB.First(&owner, "user_id = ?", ownerUserID).Error; err != nil {
		return
	}
	mailer.SendAsync(h.Mail, owner.UserEmail, subject, body)
}

func centsToDollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
