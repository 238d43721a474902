// file: internals/features/billing/controller/credit_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/billing/dto"
	model "hoaportal_backend/internals/features/billing/model"
	service "hoaportal_backend/internals/features/billing/service"
	helper "hoaportal_backend/internals/helpers"
)

type CreditController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewCreditController(db *gorm.DB) *CreditController {
	return &CreditController{DB: db, Ledger: service.NewLedgerService(db)}
}

// -----------------------------------------
// List (GET /api/a/credits)
// Query filters: owner_user_id, available (true|false), voided
// -----------------------------------------
func (h *CreditController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "date", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.UserCredit{})

	if v := c.Query("owner_user_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("user_credit_owner_user_id = ?", id)
		}
	}
	if v := c.Query("available"); v != "" {
		if v == "true" {
			q = q.Where("user_credit_is_voided = ? AND user_credit_is_applied = ? AND user_credit_amount_cents > 0", false, false)
		} else {
			q = q.Where("user_credit_is_applied = ? OR user_credit_is_voided = ?", true, true)
		}
	}
	if v := c.Query("voided"); v != "" {
		q = q.Where("user_credit_is_voided = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"date":   "user_credit_date",
		"amount": "user_credit_amount_cents",
	}, "date")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.UserCredit
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToUserCreditResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Grant (POST /api/a/credits)
// -----------------------------------------
func (h *CreditController) Grant(c *fiber.Ctx) error {
	var in dto.CreditGrantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	credit, err := h.Ledger.GrantCredit(c.UserContext(), in.UserCreditOwnerUserID, in.UserCreditAmountCents, in.UserCreditReason)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonCreated(c, "credit granted", dto.ToUserCreditResponse(*credit))
}

// -----------------------------------------
// Applications (GET /api/a/credits/:id/applications)
// Audit view of a credit's consumption trail, reversals included.
// -----------------------------------------
func (h *CreditController) Applications(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var list []model.CreditApplication
	if err := h.DB.
		Where("credit_application_user_credit_id = ?", id).
		Order("credit_application_date ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToCreditApplicationResponses(list))
}
