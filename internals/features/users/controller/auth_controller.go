// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "hoaportal_backend/internals/features/users/dto"
	model "hoaportal_backend/internals/features/users/model"
	service "hoaportal_backend/internals/features/users/service"
	helper "hoaportal_backend/internals/helpers"
)

type AuthController struct {
	DB      *gorm.DB
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Service: service.NewAuthService(db)}
}

// -----------------------------------------
// Register (POST /api/auth/register)
// -----------------------------------------
func (h *AuthController) Register(c *fiber.Ctx) error {
	var in dto.RegisterDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	user, err := h.Service.Register(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "account created", dto.ToUserResponse(*user))
}

// -----------------------------------------
// Login (POST /api/auth/login)
// -----------------------------------------
func (h *AuthController) Login(c *fiber.Ctx) error {
	var in dto.LoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	pair, err := h.Service.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "login ok", pair)
}

// -----------------------------------------
// Google login (POST /api/auth/google)
// -----------------------------------------
func (h *AuthController) LoginWithGoogle(c *fiber.Ctx) error {
	var in dto.GoogleLoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	pair, err := h.Service.LoginWithGoogle(c.UserContext(), in.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleTokenInvalid):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "login ok", pair)
}

// -----------------------------------------
// Me (GET /api/u/me)
// -----------------------------------------
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var user model.User
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToUserResponse(user))
}
