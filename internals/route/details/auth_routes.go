// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "hoaportal_backend/internals/features/users/controller"
	middleware "hoaportal_backend/internals/middlewares"
	authMiddleware "hoaportal_backend/internals/middlewares/auth"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	r.Post("/register", middleware.RegisterRateLimiter(), ctrl.Register)
	r.Post("/login", middleware.LoginRateLimiter(), ctrl.Login)
	r.Post("/google-login", middleware.LoginRateLimiter(), ctrl.LoginWithGoogle)
	r.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
}
