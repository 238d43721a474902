// file: internals/features/users/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "hoaportal_backend/internals/features/users/dto"
	model "hoaportal_backend/internals/features/users/model"
	helper "hoaportal_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// -----------------------------------------
// List (GET /api/a/users)
// Query filters: q (email/name), billing_contact, active
// -----------------------------------------
func (h *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.User{})

	if v := strings.TrimSpace(c.Query("q")); v != "" {
		needle := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(user_email) LIKE ? OR LOWER(user_full_name) LIKE ?", needle, needle)
	}
	if v := c.Query("billing_contact"); v != "" {
		q = q.Where("user_is_billing_contact = ?", strings.EqualFold(v, "true"))
	}
	if v := c.Query("active"); v != "" {
		q = q.Where("user_is_active = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "user_created_at",
		"email":      "user_email",
		"name":       "user_full_name",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.User
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToUserResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /api/a/users/:id)
// -----------------------------------------
func (h *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var user model.User
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToUserResponse(user))
}

// -----------------------------------------
// Update (PATCH /api/a/users/:id)
// -----------------------------------------
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.UserUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var user model.User
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "user_id = ?", id).Error; err != nil {
			return err
		}
		if in.UserFullName != nil {
			user.UserFullName = strings.TrimSpace(*in.UserFullName)
		}
		if in.UserLotNumber != nil {
			user.UserLotNumber = in.UserLotNumber
		}
		if in.UserIsBillingContact != nil {
			user.UserIsBillingContact = *in.UserIsBillingContact
		}
		if in.UserIsActive != nil {
			user.UserIsActive = *in.UserIsActive
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "user updated", dto.ToUserResponse(user))
}
